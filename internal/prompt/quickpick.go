package prompt

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
)

// selectFunc runs a survey select and stores the chosen index in response.
type selectFunc func(q *survey.Select, response *int) error

func surveySelect(q *survey.Select, response *int) error {
	err := survey.AskOne(q, response)
	drainStdin()
	return err
}

// quickPick shows one survey.Select per Show. survey cannot be interrupted
// from another goroutine, so Dispose only stops event delivery.
type quickPick struct {
	opts   wizard.QuickPickOptions
	out    io.Writer
	log    *slog.Logger
	q      *eventQueue
	ask    selectFunc
	shown  sync.Once
	closed sync.Once
}

func newQuickPick(opts wizard.QuickPickOptions, out io.Writer, log *slog.Logger) *quickPick {
	return &quickPick{opts: opts, out: out, log: log, q: newEventQueue(), ask: surveySelect}
}

func (p *quickPick) Events() <-chan wizard.Event { return p.q.out }

func (p *quickPick) Show() error {
	p.shown.Do(func() {
		_, _ = fmt.Fprintln(p.out, renderHeader(p.opts.Header, "ctrl+c cancel"))
		go p.run()
	})
	return nil
}

func (p *quickPick) question() *survey.Select {
	items := p.opts.Items
	message := p.opts.Placeholder
	if message == "" {
		message = "Select:"
	}
	q := &survey.Select{
		Message:  message,
		Options:  optionLabels(items, p.opts.Back),
		PageSize: 15,
		Description: func(_ string, index int) string {
			if index < len(items) {
				return itemDescription(items[index])
			}
			return ""
		},
	}
	if i := activeIndex(items, p.opts.Active); i >= 0 {
		q.Default = i
	}
	return q
}

func (p *quickPick) run() {
	var idx int
	err := p.ask(p.question(), &idx)
	p.q.push(p.result(idx, err))
}

func (p *quickPick) result(idx int, err error) wizard.Event {
	items := p.opts.Items
	switch {
	case errors.Is(err, terminal.InterruptErr):
		return wizard.Event{Kind: wizard.EventHide}
	case err != nil:
		p.log.Debug("choice prompt failed", "title", p.opts.Title, "error", err)
		return wizard.Event{Kind: wizard.EventHide}
	case p.opts.Back && idx == len(items):
		return wizard.Event{Kind: wizard.EventBack}
	case idx < 0 || idx >= len(items):
		return wizard.Event{Kind: wizard.EventHide}
	default:
		return wizard.Event{Kind: wizard.EventSelect, Item: items[idx]}
	}
}

func (p *quickPick) SetEnabled(bool) {}

func (p *quickPick) SetBusy(bool) {}

func (p *quickPick) Dispose() {
	p.closed.Do(p.q.close)
}
