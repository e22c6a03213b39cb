package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Bibi40k/sftp-logfetch/internal/store"
	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient/mocks"
	"github.com/stretchr/testify/require"
)

const testFingerprint = "SHA256:abcdefgh12345678"

// harness is an app wired to fakes, plus what the fakes observed.
type harness struct {
	app    *app
	out    *bytes.Buffer
	client *mocks.ClientInterface

	mu       sync.Mutex
	connects []sftpclient.Config
	opened   []string
}

func newHarness(t *testing.T, ui wizard.UI) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := &settings{
		Port:              22,
		Pattern:           `\.log$`,
		DownloadDir:       filepath.Join(dir, "downloads"),
		KnownHosts:        filepath.Join(dir, "known_hosts"),
		StatePath:         filepath.Join(dir, "state.yaml"),
		Title:             "Log Getter",
		ConnectTimeout:    time.Second,
		ValidationTimeout: time.Second,
	}
	st, err := store.Open(cfg.StatePath)
	require.NoError(t, err)

	h := &harness{out: &bytes.Buffer{}, client: new(mocks.ClientInterface)}
	h.app = &app{
		cfg:   cfg,
		ui:    ui,
		state: st,
		connect: func(_ context.Context, c *sftpclient.Config) (sftpclient.ClientInterface, error) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.connects = append(h.connects, *c)
			return h.client, nil
		},
		resume: func(context.Context) bool { return false },
		probe:  func(context.Context, string, int) bool { return true },
		open: func(_ context.Context, path string) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.opened = append(h.opened, path)
			return nil
		},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		out: h.out,
	}
	return h
}

// serveFile sets up the mock to list files in dir and serve name.
func (h *harness) serveFile(dir, name, content string, files ...string) {
	var infos []sftpclient.FileInfo
	for i, f := range files {
		infos = append(infos, sftpclient.FileInfo{
			Name:    f,
			Size:    int64(100 * (i + 1)),
			ModTime: time.Date(2026, 3, 1, 12, i, 0, 0, time.UTC),
		})
	}
	if len(files) > 0 {
		h.client.On("ListFiles", dir, `\.log$`).Return(infos, nil)
	}
	remote := strings.TrimSuffix(dir, "/") + "/" + name
	h.client.On("Stat", remote).Return(sftpclient.FileInfo{Name: name, Size: int64(len(content))}, nil)
	h.client.On("Fetch", remote).Return(io.NopCloser(strings.NewReader(content)), nil)
	h.client.On("HostFingerprint").Return(testFingerprint).Maybe()
	h.client.On("Disconnect").Return(nil).Maybe()
}

func (h *harness) connectCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connects)
}
