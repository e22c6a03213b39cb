// Package wizardtest provides a scripted wizard.UI for tests.
//
// Each widget the sequencer creates consumes the next Script in order and
// replays its actions as events. Actions are only delivered while the widget
// is enabled, the way a real prompt ignores input while it is validating.
package wizardtest

import (
	"sync"
	"time"

	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
)

// Action is one user action. When Wait is set, the action is held back until
// Wait is closed.
type Action struct {
	Event wizard.Event
	Wait  <-chan struct{}
}

// Script is everything the user does on one prompt.
type Script []Action

// Type emits a change event for every prefix of value and then accepts it.
func Type(value string) Script {
	var s Script
	runes := []rune(value)
	for i := range runes {
		s = append(s, Action{Event: wizard.Event{Kind: wizard.EventChange, Value: string(runes[:i+1])}})
	}
	return append(s, Action{Event: wizard.Event{Kind: wizard.EventAccept, Value: value}})
}

// Accept submits value without typing it.
func Accept(value string) Script {
	return Script{{Event: wizard.Event{Kind: wizard.EventAccept, Value: value}}}
}

// Select chooses an item by label.
func Select(label string) Script {
	return Script{{Event: wizard.Event{Kind: wizard.EventSelect, Item: wizard.Item{Label: label}}}}
}

// Back triggers the navigation control.
func Back() Script {
	return Script{{Event: wizard.Event{Kind: wizard.EventBack}}}
}

// Hide dismisses the prompt.
func Hide() Script {
	return Script{{Event: wizard.Event{Kind: wizard.EventHide}}}
}

// Then appends the actions of next to s.
func (s Script) Then(next Script) Script {
	return append(append(Script{}, s...), next...)
}

// UI hands out scripted widgets in creation order.
type UI struct {
	mu      sync.Mutex
	scripts []Script
	widgets []*Widget
}

// New returns a UI that plays scripts in order. Prompts created after the
// scripts run out are dismissed immediately.
func New(scripts ...Script) *UI {
	return &UI{scripts: scripts}
}

// NewInputBox implements wizard.UI.
func (u *UI) NewInputBox(opts wizard.InputBoxOptions) wizard.InputBox {
	w := u.create(opts.Header)
	w.Input = &opts
	return w
}

// NewQuickPick implements wizard.UI.
func (u *UI) NewQuickPick(opts wizard.QuickPickOptions) wizard.QuickPick {
	w := u.create(opts.Header)
	w.Pick = &opts
	return w
}

func (u *UI) create(h wizard.Header) *Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	script := Hide()
	if len(u.scripts) > 0 {
		script = u.scripts[0]
		u.scripts = u.scripts[1:]
	}
	w := &Widget{
		Header:  h,
		script:  script,
		events:  make(chan wizard.Event),
		done:    make(chan struct{}),
		enabled: true,
	}
	u.widgets = append(u.widgets, w)
	return w
}

// Widgets returns every widget created so far.
func (u *UI) Widgets() []*Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]*Widget(nil), u.widgets...)
}

// Live counts widgets that were shown and not yet disposed.
func (u *UI) Live() int {
	n := 0
	for _, w := range u.Widgets() {
		if w.Shown() && !w.Disposed() {
			n++
		}
	}
	return n
}

// Remaining counts scripts not consumed yet.
func (u *UI) Remaining() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.scripts)
}

// Widget is a scripted InputBox and QuickPick.
type Widget struct {
	Header wizard.Header
	Input  *wizard.InputBoxOptions
	Pick   *wizard.QuickPickOptions

	script Script
	events chan wizard.Event
	done   chan struct{}

	mu       sync.Mutex
	enabled  bool
	busy     bool
	shown    bool
	disposed bool
	messages []string
	disables int
}

// Show starts replaying the script.
func (w *Widget) Show() error {
	w.mu.Lock()
	w.shown = true
	w.mu.Unlock()
	go w.play()
	return nil
}

func (w *Widget) play() {
	for _, a := range w.script {
		if a.Wait != nil {
			select {
			case <-a.Wait:
			case <-w.done:
				return
			}
		}
		if !w.waitEnabled() {
			return
		}
		if a.Event.Kind == wizard.EventAccept {
			// A submitted prompt stays disabled until the driver re-enables it.
			w.mu.Lock()
			w.enabled = false
			w.mu.Unlock()
		}
		select {
		case w.events <- a.Event:
		case <-w.done:
			return
		}
	}
}

func (w *Widget) waitEnabled() bool {
	t := time.NewTicker(time.Millisecond)
	defer t.Stop()
	for {
		w.mu.Lock()
		enabled := w.enabled
		w.mu.Unlock()
		if enabled {
			return true
		}
		select {
		case <-t.C:
		case <-w.done:
			return false
		}
	}
}

// Events implements wizard.Widget.
func (w *Widget) Events() <-chan wizard.Event { return w.events }

// SetEnabled implements wizard.Widget.
func (w *Widget) SetEnabled(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !enabled {
		w.disables++
	}
	w.enabled = enabled
}

// SetBusy implements wizard.Widget.
func (w *Widget) SetBusy(busy bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = busy
}

// SetValidationMessage implements wizard.InputBox.
func (w *Widget) SetValidationMessage(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msg)
}

// Dispose implements wizard.Widget.
func (w *Widget) Dispose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return
	}
	w.disposed = true
	close(w.done)
}

// Messages returns every validation message set, oldest first.
func (w *Widget) Messages() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.messages...)
}

// Shown reports whether Show was called.
func (w *Widget) Shown() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shown
}

// Disposed reports whether Dispose was called.
func (w *Widget) Disposed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disposed
}

// Busy reports the last busy state set.
func (w *Widget) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Disables counts SetEnabled(false) calls.
func (w *Widget) Disables() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disables
}
