package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Bibi40k/sftp-logfetch/internal/store"
	"github.com/Bibi40k/sftp-logfetch/pkg/config"
	"github.com/Bibi40k/sftp-logfetch/pkg/logfetch"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
)

// target identifies one remote log file and the credentials to reach it.
type target struct {
	Host     string
	User     string
	Password string
	Path     string
	File     string
}

// session keeps one connection open across wizard steps and reconnects
// when the credentials change.
type session struct {
	app    *app
	key    string
	client sftpclient.ClientInterface
}

func (s *session) open(ctx context.Context, t target) (sftpclient.ClientInterface, error) {
	key := strings.Join([]string{t.Host, t.User, t.Password}, "\x00")
	if s.client != nil && s.key == key {
		return s.client, nil
	}
	s.close()

	a := s.app
	a.log.Info("Connecting", "host", t.Host, "port", a.cfg.Port, "user", t.User)
	client, err := a.connect(ctx, &sftpclient.Config{
		Host:           t.Host,
		Port:           a.cfg.Port,
		Username:       t.User,
		Password:       t.Password,
		KnownHostsPath: a.cfg.KnownHosts,
		Insecure:       a.cfg.Insecure,
		Timeout:        a.cfg.ConnectTimeout,
		Logger:         a.log,
	})
	if err != nil {
		return nil, connectError(t.Host, err)
	}
	if a.cfg.Insecure {
		a.log.Warn("Host key not verified", "host", t.Host, "fingerprint", client.HostFingerprint())
	}
	s.key, s.client = key, client
	return client, nil
}

func (s *session) close() {
	if s.client == nil {
		return
	}
	if err := s.client.Disconnect(); err != nil {
		s.app.log.Debug("disconnect failed", "error", err)
	}
	s.client, s.key = nil, ""
}

func connectError(host string, err error) error {
	var unknown *sftpclient.UnknownHostError
	if errors.As(err, &unknown) {
		return &userError{
			msg:  fmt.Sprintf("unknown host key for %s (%s)", host, unknown.Fingerprint),
			hint: fmt.Sprintf("verify the key, then run: ssh-keyscan -H %s >> %s (or pass --insecure)", host, unknown.KnownHosts),
		}
	}
	return err
}

// listLogs lists matching files, turning an empty directory into a user error.
func (a *app) listLogs(client sftpclient.ClientInterface, dir string) ([]sftpclient.FileInfo, error) {
	files, err := logfetch.New(client, logfetch.WithLogger(a.log)).ListLogs(dir, a.cfg.Pattern)
	if errors.Is(err, logfetch.ErrNoLogs) {
		return nil, &userError{
			msg:  err.Error(),
			hint: "check the directory or adjust --pattern",
		}
	}
	return files, err
}

// download fetches t, remembers it and runs the configured follow-ups.
func (a *app) download(ctx context.Context, client sftpclient.ClientInterface, t target) (*logfetch.Result, error) {
	f := logfetch.New(client, logfetch.WithLogger(a.log), logfetch.WithProgress(a.out))
	res, err := f.Download(ctx, t.Path, t.File, a.cfg.DownloadDir)
	if err != nil {
		return nil, err
	}
	a.log.Info("Downloaded", "file", res.LocalPath, "bytes", res.Bytes, "sha256", res.SHA256, "took", res.Duration)

	a.remember(t)

	if a.cfg.ResultPath != "" {
		out := config.FetchResult{
			Host:            t.Host,
			Port:            a.cfg.Port,
			User:            t.User,
			RemotePath:      res.RemotePath,
			LocalPath:       res.LocalPath,
			Bytes:           res.Bytes,
			SHA256:          res.SHA256,
			HostFingerprint: client.HostFingerprint(),
		}
		if err := config.SaveFetchResult(a.cfg.ResultPath, out); err != nil {
			return res, err
		}
		a.log.Info("Fetch result written", "path", a.cfg.ResultPath)
	}

	if a.cfg.Open && !a.cfg.NonInteractive {
		if err := a.open(ctx, res.LocalPath); err != nil {
			a.log.Warn("Could not open file", "error", err)
		}
	}
	return res, nil
}

// remember stores everything except the password. Failures only warn.
func (a *app) remember(t target) {
	for _, kv := range [][2]string{
		{store.KeyHost, t.Host},
		{store.KeyUsername, t.User},
		{store.KeyPath, t.Path},
		{store.KeyFilename, t.File},
	} {
		if err := a.state.Update(kv[0], kv[1]); err != nil {
			a.log.Warn("Could not save answer", "key", kv[0], "state", a.state.Path(), "error", err)
			return
		}
	}
	a.log.Debug("Answers saved", "state", a.state.Path())
}
