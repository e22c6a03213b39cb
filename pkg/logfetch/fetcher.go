// Package logfetch lists and downloads log files from a remote SFTP session.
package logfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Bibi40k/sftp-logfetch/configs"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
	"github.com/google/uuid"
)

// ErrNoLogs is returned by ListLogs when no file in the directory matches.
var ErrNoLogs = errors.New("no log files found")

// Result describes a completed download.
type Result struct {
	RemotePath string
	LocalPath  string
	Bytes      int64
	SHA256     string
	Duration   time.Duration
}

// Fetcher runs list and download operations against one session.
type Fetcher struct {
	client   sftpclient.ClientInterface
	log      *slog.Logger
	progress io.Writer
	interval time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// WithProgress prints download progress to w. Nil disables it.
func WithProgress(w io.Writer) Option {
	return func(f *Fetcher) { f.progress = w }
}

// WithProgressInterval overrides timeouts.progress_seconds.
func WithProgressInterval(d time.Duration) Option {
	return func(f *Fetcher) { f.interval = d }
}

// New creates a Fetcher on top of an open session.
func New(client sftpclient.ClientInterface, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   client,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		interval: configs.Defaults.Timeouts.Progress(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ListLogs returns files in dir matching pattern, newest first.
func (f *Fetcher) ListLogs(dir, pattern string) ([]sftpclient.FileInfo, error) {
	files, err := f.client.ListFiles(dir, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s matching %q", ErrNoLogs, dir, pattern)
	}
	return files, nil
}

// Download copies dir/name into localDir. The data goes to a hidden
// partial file first and is renamed into place once complete.
func (f *Fetcher) Download(ctx context.Context, dir, name, localDir string) (*Result, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	remotePath := path.Join(dir, name)
	start := time.Now()

	var size int64
	if info, err := f.client.Stat(remotePath); err != nil {
		f.log.Debug("stat failed, size unknown", "path", remotePath, "error", err)
	} else {
		size = info.Size
	}

	if err := os.MkdirAll(localDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	src, err := f.client.Fetch(remotePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = src.Close()
	}()

	partPath := filepath.Join(localDir, fmt.Sprintf(".%s.%s.part", name, uuid.NewString()))
	out, err := os.OpenFile(partPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	keep := false
	defer func() {
		if !keep {
			_ = out.Close()
			_ = os.Remove(partPath)
		}
	}()

	f.log.Debug("downloading", "remote", remotePath, "part", partPath, "size", size)
	hash := sha256.New()
	counter := &progressCounter{
		out:       f.progress,
		name:      name,
		total:     size,
		interval:  f.interval,
		startTime: start,
	}
	n, err := io.Copy(io.MultiWriter(out, hash, counter), &ctxReader{ctx: ctx, r: src})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", remotePath, err)
	}
	counter.finish()

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	localPath := filepath.Join(localDir, name)
	if err := os.Rename(partPath, localPath); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	keep = true

	res := &Result{
		RemotePath: remotePath,
		LocalPath:  localPath,
		Bytes:      n,
		SHA256:     hex.EncodeToString(hash.Sum(nil)),
		Duration:   time.Since(start),
	}
	f.log.Debug("download complete", "local", localPath, "bytes", n, "sha256", res.SHA256)
	return res, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
