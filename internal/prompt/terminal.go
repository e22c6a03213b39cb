// Package prompt renders wizard widgets on an interactive terminal: text
// fields through readline and choice lists through survey.
package prompt

import (
	"io"
	"log/slog"
	"os"

	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
)

// Terminal implements wizard.UI on stdin/stdout.
type Terminal struct {
	out io.Writer
	log *slog.Logger
}

// NewTerminal returns a terminal UI. A nil logger discards output.
func NewTerminal(log *slog.Logger) *Terminal {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Terminal{out: os.Stdout, log: log}
}

// NewInputBox implements wizard.UI.
func (t *Terminal) NewInputBox(opts wizard.InputBoxOptions) wizard.InputBox {
	return newInputBox(opts, t.out, t.log)
}

// NewQuickPick implements wizard.UI.
func (t *Terminal) NewQuickPick(opts wizard.QuickPickOptions) wizard.QuickPick {
	return newQuickPick(opts, t.out, t.log)
}

var _ wizard.UI = (*Terminal)(nil)
