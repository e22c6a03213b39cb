package main

import (
	"context"
	"testing"
	"time"

	"github.com/Bibi40k/sftp-logfetch/internal/wizard/wizardtest"
	"github.com/stretchr/testify/assert"
)

func TestValidateHost(t *testing.T) {
	h := newHarness(t, wizardtest.New())
	var probed []string
	h.app.probe = func(_ context.Context, host string, port int) bool {
		probed = append(probed, host)
		return host != "10.0.0.9"
	}

	tests := []struct {
		value string
		want  string
	}{
		{"10.0.0.5", ""},
		{" logs.example.com ", ""},
		{"10.0.0.", "Invalid IP Address or hostname"},
		{"invalid host", "Invalid IP Address or hostname"},
		{"", "Invalid IP Address or hostname"},
		{"10.0.0.9", "10.0.0.9 is not reachable on port 22"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, h.app.validateHost(context.Background(), tt.value))
		})
	}
	assert.Equal(t, []string{"10.0.0.5", "logs.example.com", "10.0.0.9"}, probed, "syntax errors skip the probe")
}

func TestValidateHostProbeIsBounded(t *testing.T) {
	h := newHarness(t, wizardtest.New())
	h.app.cfg.ValidationTimeout = 20 * time.Millisecond
	h.app.probe = func(ctx context.Context, _ string, _ int) bool {
		<-ctx.Done()
		return false
	}

	start := time.Now()
	msg := h.app.validateHost(context.Background(), "10.0.0.5")
	assert.Equal(t, "10.0.0.5 is not reachable on port 22", msg)
	assert.Less(t, time.Since(start), time.Second)
}

func TestValidateUser(t *testing.T) {
	assert.Equal(t, "", validateUser(context.Background(), "alice"))
	assert.Equal(t, "Username is required", validateUser(context.Background(), "  "))
	assert.Equal(t, "Username must not contain spaces", validateUser(context.Background(), "al ice"))
}

func TestValidatePassword(t *testing.T) {
	assert.Equal(t, "", validatePassword(context.Background(), " "))
	assert.Equal(t, "Password is required", validatePassword(context.Background(), ""))
}

func TestValidateRemoteDir(t *testing.T) {
	assert.Equal(t, "", validateRemoteDir(context.Background(), "/var/log"))
	assert.NotEmpty(t, validateRemoteDir(context.Background(), "var/log"))
	assert.NotEmpty(t, validateRemoteDir(context.Background(), ""))
}
