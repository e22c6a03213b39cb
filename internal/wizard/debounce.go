package wizard

import "context"

// Validator checks a text value and returns a message to show, or "" when the
// value is acceptable. It may block; ctx is cancelled once the call is
// superseded or the prompt closes.
type Validator func(ctx context.Context, value string) string

type validation struct {
	seq     uint64
	value   string
	message string
}

// debouncer keeps only the latest validation call relevant. It is not safe for
// concurrent use: issue, settle and invalidate run on the driver goroutine, the
// validators themselves run on their own goroutines and report on results.
type debouncer struct {
	validate Validator
	ctx      context.Context
	stop     context.CancelFunc
	results  chan validation

	seq     uint64
	pending bool
	cancel  context.CancelFunc
}

func newDebouncer(ctx context.Context, validate Validator) *debouncer {
	ctx, stop := context.WithCancel(ctx)
	return &debouncer{
		validate: validate,
		ctx:      ctx,
		stop:     stop,
		results:  make(chan validation),
	}
}

// issue starts validating value and makes it the call in flight.
func (d *debouncer) issue(value string) {
	seq := d.next()
	if d.validate == nil {
		d.pending = false
		return
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.cancel = cancel
	d.pending = true
	go func() {
		defer cancel()
		msg := d.validate(ctx, value)
		select {
		case d.results <- validation{seq: seq, value: value, message: msg}:
		case <-d.ctx.Done():
		}
	}()
}

// settle reports whether v belongs to the call in flight. Stale results must
// be dropped by the caller.
func (d *debouncer) settle(v validation) bool {
	if !d.pending || v.seq != d.seq {
		return false
	}
	d.pending = false
	d.cancel = nil
	return true
}

// invalidate forgets the call in flight, if any.
func (d *debouncer) invalidate() {
	d.next()
	d.pending = false
}

func (d *debouncer) next() uint64 {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.seq++
	return d.seq
}

func (d *debouncer) close() {
	d.stop()
}
