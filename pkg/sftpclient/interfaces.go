package sftpclient

import (
	"context"
	"io"
)

// ClientInterface abstracts remote file operations.
// The real implementation uses pkg/sftp; tests inject a mock.
type ClientInterface interface {
	ListFiles(dir, pattern string) ([]FileInfo, error)
	Stat(remotePath string) (FileInfo, error)
	Fetch(remotePath string) (io.ReadCloser, error)
	HostFingerprint() string
	Disconnect() error
}

// Connector opens a session. Commands take one so tests can avoid the network.
type Connector func(ctx context.Context, cfg *Config) (ClientInterface, error)

// Connect is the Connector backed by NewClient.
func Connect(ctx context.Context, cfg *Config) (ClientInterface, error) {
	c, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// compile-time interface compliance check
var _ ClientInterface = (*Client)(nil)
