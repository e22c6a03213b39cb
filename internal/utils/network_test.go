package utils

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestValidateIPv4(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		wantErr bool
	}{
		{"Valid private", "10.0.0.5", false},
		{"Valid public", "8.8.8.8", false},
		{"Out of range", "10.0.0.256", true},
		{"Too few octets", "10.0.0", true},
		{"IPv6", "::1", true},
		{"Garbage", "invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIPv4(tt.ip)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIPv4(%q) error = %v, wantErr %v", tt.ip, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHost(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		wantErr bool
	}{
		{"IPv4", "10.0.0.5", false},
		{"Hostname", "logs.example.com", false},
		{"Single label", "localhost", false},
		{"Trailing dot", "logs.example.com.", false},
		{"Partial IP", "10.0.", true},
		{"Empty", "", true},
		{"Whitespace", "   ", true},
		{"Underscore", "bad_host", true},
		{"Leading dash", "-host.example.com", true},
		{"Space inside", "my host", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHost(tt.host)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHost(%q) error = %v, wantErr %v", tt.host, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRemoteDir(t *testing.T) {
	tests := []struct {
		dir     string
		wantErr bool
	}{
		{"/var/log/", false},
		{"/var/log/app", false},
		{"var/log", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			err := ValidateRemoteDir(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRemoteDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"SSH", "22", 22, false},
		{"Padded", " 2222 ", 2222, false},
		{"Zero", "0", 0, true},
		{"Too large", "65536", 0, true},
		{"Not a number", "ssh", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePort() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParsePort() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsPortOpenContext(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if !IsPortOpenContext(ctx, "127.0.0.1", port) {
		t.Errorf("expected port %d to be open", port)
	}

	_ = ln.Close()
	ctx, cancel = context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if IsPortOpenContext(ctx, "127.0.0.1", port) {
		t.Errorf("expected port %d to be closed", port)
	}
}

func TestIsPortOpenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if IsPortOpenContext(ctx, "127.0.0.1", 22) {
		t.Error("cancelled context must not report an open port")
	}
}
