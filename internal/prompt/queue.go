package prompt

import (
	"sync"

	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
)

// eventQueue decouples terminal callbacks from the consumer. push never
// blocks, so readline's key loop keeps running while the driver is busy.
type eventQueue struct {
	mu    sync.Mutex
	items []wizard.Event
	wake  chan struct{}
	out   chan wizard.Event
	done  chan struct{}
	once  sync.Once
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		wake: make(chan struct{}, 1),
		out:  make(chan wizard.Event),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *eventQueue) push(e wizard.Event) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *eventQueue) pop() (wizard.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return wizard.Event{}, false
	}
	e := q.items[0]
	q.items = q.items[1:]
	return e, true
}

func (q *eventQueue) run() {
	for {
		e, ok := q.pop()
		if !ok {
			select {
			case <-q.wake:
				continue
			case <-q.done:
				return
			}
		}
		select {
		case q.out <- e:
		case <-q.done:
			return
		}
	}
}

func (q *eventQueue) close() {
	q.once.Do(func() { close(q.done) })
}
