// Package sftpclient wraps golang.org/x/crypto/ssh and github.com/pkg/sftp
// for the few remote file operations log fetching needs.
package sftpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Bibi40k/sftp-logfetch/configs"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Client wraps an SFTP session over an SSH connection.
type Client struct {
	ssh         *ssh.Client
	sftp        *sftp.Client
	fingerprint string
	log         *slog.Logger
}

// Config holds SFTP connection parameters.
type Config struct {
	Host           string        // server hostname or IP
	Port           int           // SSH port (default: 22)
	Username       string        // login user
	Password       string        // password, also used for keyboard-interactive prompts
	KnownHostsPath string        // known_hosts file used to verify the server key
	Insecure       bool          // accept any host key and log its fingerprint
	Timeout        time.Duration // TCP connect + SSH handshake (default from configs)
	Logger         *slog.Logger
}

// Validate checks the fields NewClient cannot default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host is required")
	}
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in range 0..65535")
	}
	if !c.Insecure && strings.TrimSpace(c.KnownHostsPath) == "" {
		return fmt.Errorf("known_hosts path is required unless insecure is set")
	}
	return nil
}

// Address returns host:port, applying the default port.
func (c *Config) Address() string {
	port := c.Port
	if port == 0 {
		port = configs.Defaults.SFTP.Port
	}
	return net.JoinHostPort(strings.TrimSpace(c.Host), strconv.Itoa(port))
}

// NewClient connects to the server and opens an SFTP session.
// ctx bounds the dial and the SSH handshake only.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = configs.Defaults.SFTP.Port
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = configs.Defaults.Timeouts.Connect()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var fingerprint string
	hostKeyCallback, err := newHostKeyCallback(cfg, func(fp string) { fingerprint = fp })
	if err != nil {
		return nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User: cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(cfg.Password),
			ssh.KeyboardInteractive(answerWith(cfg.Password)),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         cfg.Timeout,
	}

	addr := cfg.Address()
	dialer := net.Dialer{Timeout: cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	deadline := time.Now().Add(cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshCfg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	_ = conn.SetDeadline(time.Time{})

	sshClient := ssh.NewClient(sshConn, chans, reqs)
	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, fmt.Errorf("start sftp session on %s: %w", addr, err)
	}

	log.Debug("sftp connected", "host", addr, "fingerprint", fingerprint)
	c := newFromSFTP(sftpClient, log)
	c.ssh = sshClient
	c.fingerprint = fingerprint
	return c, nil
}

func newFromSFTP(sc *sftp.Client, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{sftp: sc, log: log}
}

// answerWith replies to every keyboard-interactive question with password.
func answerWith(password string) ssh.KeyboardInteractiveChallenge {
	return func(_, _ string, questions []string, _ []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = password
		}
		return answers, nil
	}
}

// HostFingerprint returns the SHA256 fingerprint of the server key.
func (c *Client) HostFingerprint() string {
	return c.fingerprint
}

// Stat returns metadata for a remote file.
func (c *Client) Stat(remotePath string) (FileInfo, error) {
	fi, err := c.sftp.Stat(remotePath)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", remotePath, err)
	}
	return newFileInfo(fi), nil
}

// Fetch opens a remote file for reading. The caller closes it.
func (c *Client) Fetch(remotePath string) (io.ReadCloser, error) {
	f, err := c.sftp.Open(remotePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", remotePath, err)
	}
	return f, nil
}

// Disconnect closes the SFTP session and the SSH connection.
func (c *Client) Disconnect() error {
	var firstErr error
	if c.sftp != nil {
		if err := c.sftp.Close(); err != nil {
			firstErr = err
		}
	}
	if c.ssh != nil {
		if err := c.ssh.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
