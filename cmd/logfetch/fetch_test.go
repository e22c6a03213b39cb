package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Bibi40k/sftp-logfetch/internal/wizard/wizardtest"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectErrorUnknownHost(t *testing.T) {
	err := connectError("10.0.0.5", fmt.Errorf("ssh handshake: %w", &sftpclient.UnknownHostError{
		Host:        "10.0.0.5:22",
		Fingerprint: testFingerprint,
		KnownHosts:  "/home/alice/.ssh/known_hosts",
	}))

	var ue *userError
	require.True(t, errors.As(err, &ue))
	assert.Contains(t, ue.Error(), testFingerprint)
	assert.Contains(t, ue.Hint(), "ssh-keyscan -H 10.0.0.5 >> /home/alice/.ssh/known_hosts")
}

func TestConnectErrorPassthrough(t *testing.T) {
	base := errors.New("connection refused")
	assert.Same(t, base, connectError("h", base))
}

func TestSessionInsecureLogsFingerprint(t *testing.T) {
	h := newHarness(t, wizardtest.New())
	h.app.cfg.Insecure = true
	h.client.On("HostFingerprint").Return(testFingerprint)
	h.client.On("Disconnect").Return(nil)

	s := &session{app: h.app}
	_, err := s.open(context.Background(), target{Host: "10.0.0.5", User: "alice", Password: "pw"})
	require.NoError(t, err)
	s.close()

	require.Len(t, h.connects, 1)
	assert.True(t, h.connects[0].Insecure)
	h.client.AssertCalled(t, "HostFingerprint")
	h.client.AssertCalled(t, "Disconnect")
}

func TestSessionReusesConnection(t *testing.T) {
	h := newHarness(t, wizardtest.New())
	h.client.On("Disconnect").Return(nil)

	s := &session{app: h.app}
	tgt := target{Host: "10.0.0.5", User: "alice", Password: "pw", Path: "/a"}
	_, err := s.open(context.Background(), tgt)
	require.NoError(t, err)
	tgt.Path = "/b"
	_, err = s.open(context.Background(), tgt)
	require.NoError(t, err)
	assert.Equal(t, 1, h.connectCount())

	s.close()
	s.close()
	h.client.AssertNumberOfCalls(t, "Disconnect", 1)
}
