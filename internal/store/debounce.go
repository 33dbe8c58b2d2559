package store

import (
	"sync"
	"time"
)

// Debouncer coalesces calls scheduled under the same key. Only the last fn
// scheduled within the window runs.
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	pending map[string]*pendingCall
}

type pendingCall struct {
	timer *time.Timer
	fn    func()
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window, pending: make(map[string]*pendingCall)}
}

// Schedule replaces any pending call for key and restarts its timer. With a
// zero window fn runs immediately on the caller's goroutine.
func (d *Debouncer) Schedule(key string, fn func()) {
	if d.window <= 0 {
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	call := &pendingCall{fn: fn}
	call.timer = time.AfterFunc(d.window, func() { d.fire(key, call) })
	d.pending[key] = call
}

func (d *Debouncer) fire(key string, call *pendingCall) {
	d.mu.Lock()
	if d.pending[key] != call {
		// Replaced or flushed while the timer was firing.
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()
	call.fn()
}

// Flush runs every pending call now and clears the queue.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	calls := make([]*pendingCall, 0, len(d.pending))
	for key, call := range d.pending {
		call.timer.Stop()
		calls = append(calls, call)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, call := range calls {
		call.fn()
	}
}

// Pending reports how many keys are waiting to fire.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
