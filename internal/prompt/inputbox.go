package prompt

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
	"github.com/chzyer/readline"
)

// backKey is Ctrl+G. Ctrl+B cannot be used: readline folds the left arrow
// into the same rune before filters see it.
const backKey = rune(7)

type inputBox struct {
	opts wizard.InputBoxOptions
	out  io.Writer
	log  *slog.Logger
	q    *eventQueue

	mu      sync.Mutex
	message string
	busy    bool
	rl      *readline.Instance

	// configure adjusts the readline config before the prompt opens.
	configure func(*readline.Config)

	back     atomic.Bool
	last     string
	reopen   chan struct{}
	done     chan struct{}
	shown    sync.Once
	disposed sync.Once
}

func newInputBox(opts wizard.InputBoxOptions, out io.Writer, log *slog.Logger) *inputBox {
	return &inputBox{
		opts:   opts,
		out:    out,
		log:    log,
		q:      newEventQueue(),
		last:   opts.Value,
		reopen: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (b *inputBox) Events() <-chan wizard.Event { return b.q.out }

func (b *inputBox) Show() error {
	var err error
	b.shown.Do(func() {
		var hints []string
		if b.opts.Back {
			hints = append(hints, "ctrl+g back")
		}
		hints = append(hints, "ctrl+c cancel")
		_, _ = fmt.Fprintln(b.out, renderHeader(b.opts.Header, hints...))

		cfg := &readline.Config{
			Prompt:                 b.prompt(),
			EnableMask:             b.opts.Password,
			MaskRune:               '*',
			HistoryLimit:           -1,
			DisableAutoSaveHistory: true,
			Listener:               readline.FuncListener(b.onChange),
			FuncFilterInputRune:    b.filter,
		}
		if b.configure != nil {
			b.configure(cfg)
		}
		var rl *readline.Instance
		rl, err = readline.NewEx(cfg)
		if err != nil {
			err = fmt.Errorf("open text prompt: %w", err)
			return
		}
		b.mu.Lock()
		b.rl = rl
		b.mu.Unlock()
		go b.loop(rl)
	})
	return err
}

// loop reads lines until the prompt is dismissed or disposed. After an
// accepted line it waits for SetEnabled(true) before reading again.
func (b *inputBox) loop(rl *readline.Instance) {
	value := b.opts.Value
	for {
		line, err := rl.ReadlineWithDefault(value)
		if b.isDisposed() {
			return
		}
		switch {
		case err == nil:
			value = line
			b.q.push(wizard.Event{Kind: wizard.EventAccept, Value: line})
			select {
			case <-b.reopen:
			case <-b.done:
				return
			}
		case errors.Is(err, readline.ErrInterrupt) && b.back.Swap(false):
			b.q.push(wizard.Event{Kind: wizard.EventBack})
			return
		default:
			b.log.Debug("text prompt dismissed", "title", b.opts.Title, "error", err)
			b.q.push(wizard.Event{Kind: wizard.EventHide})
			return
		}
	}
}

// onChange reports edits. readline calls it with a nil line and no key
// before every read, while the default value is still being loaded.
func (b *inputBox) onChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	if line == nil && key == 0 {
		return line, pos, false
	}
	if s := string(line); s != b.last {
		b.last = s
		b.q.push(wizard.Event{Kind: wizard.EventChange, Value: s})
	}
	return line, pos, false
}

func (b *inputBox) filter(r rune) (rune, bool) {
	if r == backKey {
		if !b.opts.Back {
			return r, false
		}
		b.back.Store(true)
		return readline.CharInterrupt, true
	}
	return r, true
}

func (b *inputBox) prompt() string {
	return formatPrompt(b.opts.Prompt, b.message, b.busy)
}

func (b *inputBox) refresh() {
	b.mu.Lock()
	rl, p := b.rl, b.prompt()
	b.mu.Unlock()
	if rl != nil {
		rl.SetPrompt(p)
		rl.Refresh()
	}
}

func (b *inputBox) SetValidationMessage(msg string) {
	b.mu.Lock()
	b.message = msg
	b.mu.Unlock()
	b.refresh()
}

func (b *inputBox) SetEnabled(enabled bool) {
	if !enabled {
		return
	}
	select {
	case b.reopen <- struct{}{}:
	default:
	}
}

func (b *inputBox) SetBusy(busy bool) {
	b.mu.Lock()
	b.busy = busy
	b.mu.Unlock()
	b.refresh()
}

func (b *inputBox) isDisposed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

func (b *inputBox) Dispose() {
	b.disposed.Do(func() {
		close(b.done)
		b.q.close()
		b.mu.Lock()
		rl := b.rl
		b.mu.Unlock()
		if rl != nil {
			_ = rl.Close()
		}
	})
}
