// Package mocks provides testify-based mock implementations for testing
// without a real SFTP server.
package mocks

import (
	"io"

	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
	"github.com/stretchr/testify/mock"
)

// ClientInterface is a mock for sftpclient.ClientInterface.
type ClientInterface struct {
	mock.Mock
}

func (m *ClientInterface) ListFiles(dir, pattern string) ([]sftpclient.FileInfo, error) {
	args := m.Called(dir, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sftpclient.FileInfo), args.Error(1)
}

func (m *ClientInterface) Stat(remotePath string) (sftpclient.FileInfo, error) {
	args := m.Called(remotePath)
	return args.Get(0).(sftpclient.FileInfo), args.Error(1)
}

func (m *ClientInterface) Fetch(remotePath string) (io.ReadCloser, error) {
	args := m.Called(remotePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *ClientInterface) HostFingerprint() string {
	args := m.Called()
	return args.String(0)
}

func (m *ClientInterface) Disconnect() error {
	args := m.Called()
	return args.Error(0)
}

// compile-time interface compliance check
var _ sftpclient.ClientInterface = (*ClientInterface)(nil)
