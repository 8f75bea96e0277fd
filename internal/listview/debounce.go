package listview

import (
	"sync"
	"time"
)

// debouncer delays a task until input has been quiet for the configured
// interval. Each Trigger cancels the previously pending task, so only the
// last one fires. It is an explicit cancellable task rather than a bare
// timeout so tests can flush it deterministically.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Trigger schedules fn after the quiet interval, replacing any pending task.
// A zero delay runs fn synchronously.
func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.delay <= 0 {
		d.pending = nil
		d.mu.Unlock()
		fn()
		return
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

func (d *debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs the pending task immediately, if any.
func (d *debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels the pending task without running it.
func (d *debouncer) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.mu.Unlock()
}
