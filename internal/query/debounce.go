package query

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into one: each Schedule cancels any
// pending function and arms a fresh timer, so only the last call within the
// delay window actually runs. Used to bound fetch volume while the user is
// typing a search term.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arms fn to run after the delay, cancelling any previously
// scheduled function that has not fired yet.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending function. Safe to call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
