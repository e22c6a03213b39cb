package sftpclient

import (
	"errors"
	"fmt"
	"net"

	homedir "github.com/mitchellh/go-homedir"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// UnknownHostError is returned when the server key is not in known_hosts.
type UnknownHostError struct {
	Host        string
	Fingerprint string
	KnownHosts  string
}

func (e *UnknownHostError) Error() string {
	return fmt.Sprintf("host %s is not in %s (key %s)", e.Host, e.KnownHosts, e.Fingerprint)
}

// newHostKeyCallback verifies server keys against known_hosts, or accepts
// any key in insecure mode. record receives the fingerprint of accepted keys.
func newHostKeyCallback(cfg *Config, record func(fingerprint string)) (ssh.HostKeyCallback, error) {
	if cfg.Insecure {
		return func(_ string, _ net.Addr, key ssh.PublicKey) error {
			record(ssh.FingerprintSHA256(key))
			return nil
		}, nil
	}

	path, err := homedir.Expand(cfg.KnownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("expand known_hosts path: %w", err)
	}
	check, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("load known_hosts %s: %w", path, err)
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		fp := ssh.FingerprintSHA256(key)
		if err := check(hostname, remote, key); err != nil {
			var keyErr *knownhosts.KeyError
			if errors.As(err, &keyErr) && len(keyErr.Want) == 0 {
				return &UnknownHostError{Host: hostname, Fingerprint: fp, KnownHosts: path}
			}
			return fmt.Errorf("host key for %s (%s) rejected: %w", hostname, fp, err)
		}
		record(fp)
		return nil
	}, nil
}
