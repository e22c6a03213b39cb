package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Bibi40k/sftp-logfetch/internal/store"
	"github.com/Bibi40k/sftp-logfetch/internal/wizard/wizardtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveLast(t *testing.T, h *harness) {
	t.Helper()
	for k, v := range map[string]string{
		store.KeyHost:     "10.0.0.5",
		store.KeyUsername: "alice",
		store.KeyPath:     "/var/log",
		store.KeyFilename: "app.log",
	} {
		require.NoError(t, h.app.state.Update(k, v))
	}
}

func TestLastAsksOnlyForPassword(t *testing.T) {
	ui := wizardtest.New(wizardtest.Type("pw"))
	h := newHarness(t, ui)
	saveLast(t, h)
	h.serveFile("/var/log", "app.log", "again")

	require.NoError(t, h.app.runLast(context.Background()))

	widgets := ui.Widgets()
	require.Len(t, widgets, 1)
	assert.Equal(t, 1, widgets[0].Header.Step)
	assert.Equal(t, 1, widgets[0].Header.TotalSteps)
	assert.False(t, widgets[0].Header.Back)
	assert.True(t, widgets[0].Input.Password)
	assert.Contains(t, widgets[0].Input.Prompt, "alice@10.0.0.5")

	data, err := os.ReadFile(filepath.Join(h.app.cfg.DownloadDir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "again", string(data))
	assert.Equal(t, "pw", h.connects[0].Password)
}

func TestLastWithoutHistory(t *testing.T) {
	h := newHarness(t, wizardtest.New())
	require.NoError(t, h.app.state.Update(store.KeyHost, "10.0.0.5"))

	err := h.app.runLast(context.Background())
	require.Error(t, err)
	var ue *userError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, `run "logfetch fetch" first`, ue.Hint())
	assert.Contains(t, ue.Error(), "username")
	assert.Equal(t, 0, h.connectCount())
}

func TestLastCancelled(t *testing.T) {
	ui := wizardtest.New(wizardtest.Hide())
	h := newHarness(t, ui)
	saveLast(t, h)

	require.NoError(t, h.app.runLast(context.Background()))
	assert.Contains(t, h.out.String(), "Cancelled.")
	assert.Equal(t, 0, h.connectCount())
}

func TestLastPasswordFromSettings(t *testing.T) {
	ui := wizardtest.New()
	h := newHarness(t, ui)
	saveLast(t, h)
	h.app.cfg.Password = "from-env"
	h.serveFile("/var/log", "app.log", "x")

	require.NoError(t, h.app.runLast(context.Background()))
	assert.Empty(t, ui.Widgets())
	assert.Equal(t, "from-env", h.connects[0].Password)
}

func TestLastNonInteractiveNeedsPassword(t *testing.T) {
	h := newHarness(t, wizardtest.New())
	saveLast(t, h)
	h.app.cfg.NonInteractive = true

	err := h.app.runLast(context.Background())
	require.Error(t, err)
	assert.Equal(t, "password must be specified", err.Error())
}
