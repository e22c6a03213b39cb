package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Bibi40k/sftp-logfetch/internal/prompt"
	"github.com/Bibi40k/sftp-logfetch/internal/store"
	"github.com/Bibi40k/sftp-logfetch/internal/utils"
	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
	"github.com/Bibi40k/sftp-logfetch/pkg/logfetch"
	"github.com/Bibi40k/sftp-logfetch/pkg/sftpclient"
)

// app bundles what a command needs. Tests replace the terminal, the
// network and the opener.
type app struct {
	cfg     *settings
	ui      wizard.UI
	state   *store.Store
	connect sftpclient.Connector
	resume  func(ctx context.Context) bool
	probe   func(ctx context.Context, host string, port int) bool
	open    func(ctx context.Context, path string) error
	log     *slog.Logger
	out     io.Writer
}

func newApp(cfg *settings, log *slog.Logger) (*app, error) {
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		return nil, &userError{
			msg:  fmt.Sprintf("cannot read saved answers: %v", err),
			hint: "delete " + cfg.StatePath + " to start over",
		}
	}
	return &app{
		cfg:     cfg,
		ui:      prompt.NewTerminal(log),
		state:   st,
		connect: sftpclient.Connect,
		resume:  prompt.ConfirmResume,
		probe:   utils.IsPortOpenContext,
		open:    logfetch.Open,
		log:     log,
		out:     os.Stdout,
	}, nil
}
