// Package utils provides internal utility functions.
package utils

import (
	"context"
	"fmt"
	"net"
	"path"
	"regexp"
	"strconv"
	"strings"
)

var hostnameLabelRE = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

// ValidateIPv4 validates an IPv4 address.
func ValidateIPv4(ip string) error {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return fmt.Errorf("invalid IP address: %s", ip)
	}

	if parsed.To4() == nil {
		return fmt.Errorf("not an IPv4 address: %s", ip)
	}

	return nil
}

// ValidateHost accepts an IPv4 address or an RFC 1123 hostname.
func ValidateHost(host string) error {
	host = strings.TrimSpace(host)
	if host == "" {
		return fmt.Errorf("host is empty")
	}
	if looksNumeric(host) {
		return ValidateIPv4(host)
	}
	if len(host) > 253 {
		return fmt.Errorf("hostname too long: %d characters", len(host))
	}
	for _, label := range strings.Split(strings.TrimSuffix(host, "."), ".") {
		if !hostnameLabelRE.MatchString(label) {
			return fmt.Errorf("invalid hostname: %s", host)
		}
	}
	return nil
}

// ValidateRemoteDir checks that dir is an absolute POSIX path.
func ValidateRemoteDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("path is empty")
	}
	if !path.IsAbs(dir) {
		return fmt.Errorf("path must be absolute: %s", dir)
	}
	return nil
}

// ParsePort parses a TCP port number.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port: %s", s)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d (must be 1-65535)", port)
	}
	return port, nil
}

// IsPortOpenContext checks if a TCP port accepts connections before ctx is done.
func IsPortOpenContext(ctx context.Context, host string, port int) bool {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func looksNumeric(host string) bool {
	for _, r := range host {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
