package logfetch_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Bibi40k/sftp-logfetch/pkg/logfetch"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListLogs(t *testing.T) {
	files := []sftpclient.FileInfo{{Name: "app.log", Size: 42}}
	client := new(mocks.ClientInterface)
	client.On("ListFiles", "/var/log", `\.log$`).Return(files, nil)

	got, err := logfetch.New(client).ListLogs("/var/log", `\.log$`)
	require.NoError(t, err)
	assert.Equal(t, files, got)
	client.AssertExpectations(t)
}

func TestListLogsEmpty(t *testing.T) {
	client := new(mocks.ClientInterface)
	client.On("ListFiles", "/var/log", `\.log$`).Return([]sftpclient.FileInfo{}, nil)

	_, err := logfetch.New(client).ListLogs("/var/log", `\.log$`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, logfetch.ErrNoLogs))
	assert.Contains(t, err.Error(), "/var/log")
}

func TestListLogsClientError(t *testing.T) {
	client := new(mocks.ClientInterface)
	client.On("ListFiles", "/var/log", "").Return(nil, errors.New("permission denied"))

	_, err := logfetch.New(client).ListLogs("/var/log", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, logfetch.ErrNoLogs))
}

func TestDownload(t *testing.T) {
	content := strings.Repeat("2026-03-01 INFO started\n", 100)
	client := new(mocks.ClientInterface)
	client.On("Stat", "/var/log/app.log").Return(sftpclient.FileInfo{Name: "app.log", Size: int64(len(content))}, nil)
	client.On("Fetch", "/var/log/app.log").Return(io.NopCloser(strings.NewReader(content)), nil)

	var progress bytes.Buffer
	dir := filepath.Join(t.TempDir(), "downloads")
	res, err := logfetch.New(client, logfetch.WithProgress(&progress)).
		Download(context.Background(), "/var/log/", "app.log", dir)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, "/var/log/app.log", res.RemotePath)
	assert.Equal(t, filepath.Join(dir, "app.log"), res.LocalPath)
	assert.Equal(t, int64(len(content)), res.Bytes)
	assert.Equal(t, hex.EncodeToString(sum[:]), res.SHA256)

	data, err := os.ReadFile(res.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "partial file must be renamed into place")
	assert.Contains(t, progress.String(), "app.log")
	assert.Contains(t, progress.String(), "100.0%")
	client.AssertExpectations(t)
}

func TestDownloadUnknownSize(t *testing.T) {
	client := new(mocks.ClientInterface)
	client.On("Stat", "/logs/a.log").Return(sftpclient.FileInfo{}, errors.New("stat unsupported"))
	client.On("Fetch", "/logs/a.log").Return(io.NopCloser(strings.NewReader("abc")), nil)

	res, err := logfetch.New(client).Download(context.Background(), "/logs", "a.log", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Bytes)
}

func TestDownloadCancelledRemovesPartial(t *testing.T) {
	client := new(mocks.ClientInterface)
	client.On("Stat", mock.Anything).Return(sftpclient.FileInfo{Size: 3}, nil)
	client.On("Fetch", "/logs/a.log").Return(io.NopCloser(strings.NewReader("abc")), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := logfetch.New(client).Download(ctx, "/logs", "a.log", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadFetchError(t *testing.T) {
	client := new(mocks.ClientInterface)
	client.On("Stat", mock.Anything).Return(sftpclient.FileInfo{}, nil)
	client.On("Fetch", "/logs/a.log").Return(nil, errors.New("no such file"))

	dir := t.TempDir()
	_, err := logfetch.New(client).Download(context.Background(), "/logs", "a.log", dir)
	require.Error(t, err)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestDownloadRejectsPathInName(t *testing.T) {
	client := new(mocks.ClientInterface)
	for _, name := range []string{"", "../etc/passwd", "sub/app.log", ".."} {
		_, err := logfetch.New(client).Download(context.Background(), "/logs", name, t.TempDir())
		assert.Error(t, err, name)
	}
	client.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestDownloadProgressInterval(t *testing.T) {
	client := new(mocks.ClientInterface)
	client.On("Stat", mock.Anything).Return(sftpclient.FileInfo{}, nil)
	client.On("Fetch", mock.Anything).Return(io.NopCloser(strings.NewReader("x")), nil)

	var progress bytes.Buffer
	_, err := logfetch.New(client,
		logfetch.WithProgress(&progress),
		logfetch.WithProgressInterval(time.Hour),
	).Download(context.Background(), "/logs", "a.log", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "a.log")
}
