// Package wizard chains interactive prompt steps into one linear flow with
// back navigation, cancellation and resume.
//
// A run is driven by a single goroutine: steps execute one at a time and every
// widget call happens on the goroutine that called Run. Widgets report user
// actions as Events; validations report back over channels.
package wizard

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Input is the sequencer handed to every step. It owns the step history and
// the single live widget.
type Input struct {
	ui      UI
	log     *slog.Logger
	current Widget
	steps   []Step
}

// Option configures a run.
type Option func(*Input)

// WithLogger sets the logger used for step transitions.
func WithLogger(l *slog.Logger) Option {
	return func(in *Input) {
		if l != nil {
			in.log = l
		}
	}
}

// Run executes start and every step it leads to.
//
// Back, Cancel and Resume are handled here and never returned. A cancelled
// run, or one that went back past its first step, returns nil; callers check
// their own state for completeness. Any other error is returned as is.
func Run(ctx context.Context, ui UI, start Step, opts ...Option) error {
	in := &Input{
		ui:  ui,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in.stepThrough(ctx, start)
}

// CanGoBack reports whether the step being shown has a predecessor.
func (in *Input) CanGoBack() bool {
	return len(in.steps) > 1
}

func (in *Input) stepThrough(ctx context.Context, start Step) error {
	defer in.release()

	step := start
	for step != nil {
		in.steps = append(in.steps, step)
		if in.current != nil {
			in.current.SetEnabled(false)
			in.current.SetBusy(true)
		}

		next, err := step(ctx, in)
		if err == nil {
			step = next
			continue
		}

		var sig Signal
		if !errors.As(err, &sig) {
			return err
		}
		switch sig {
		case Back:
			in.pop()
			step = in.pop()
			in.log.Debug("wizard back", "depth", len(in.steps))
		case Resume:
			step = in.pop()
			in.log.Debug("wizard resume", "depth", len(in.steps))
		case Cancel:
			in.log.Debug("wizard cancelled", "depth", len(in.steps))
			step = nil
		default:
			return err
		}
	}
	return nil
}

func (in *Input) pop() Step {
	n := len(in.steps)
	if n == 0 {
		return nil
	}
	step := in.steps[n-1]
	in.steps[n-1] = nil
	in.steps = in.steps[:n-1]
	return step
}

// show makes w the live widget, disposing the previous one.
func (in *Input) show(w Widget) error {
	if in.current != nil {
		in.current.Dispose()
	}
	in.current = w
	return w.Show()
}

func (in *Input) release() {
	if in.current != nil {
		in.current.Dispose()
		in.current = nil
	}
}

// header builds the common prompt header for the step being shown.
func (in *Input) header(title string, step, total int) Header {
	return Header{
		Title:      title,
		Step:       step,
		TotalSteps: total,
		Back:       in.CanGoBack(),
	}
}

func resumeOrCancel(ctx context.Context, shouldResume func(context.Context) bool) error {
	if shouldResume != nil && shouldResume(ctx) {
		return Resume
	}
	return Cancel
}
