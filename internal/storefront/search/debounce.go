package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a search fires.
const DefaultDelay = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into one delayed task. Triggering again stops the
// pending timer and cancels the context handed to any task that already started, so a
// superseded task can tell that its result is stale.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	gen    uint64
	wg     sync.WaitGroup
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn after the quiet period, superseding any earlier trigger.
// fn receives a context derived from parent that is canceled once fn is superseded.
func (d *Debouncer) Trigger(parent context.Context, fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.supersedeLocked()

	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	d.gen++
	gen := d.gen

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		current := gen == d.gen && ctx.Err() == nil
		d.mu.Unlock()
		if !current {
			return
		}
		fn(ctx)
	})
}

// Stop cancels the pending timer and any running task, then waits for running tasks
// to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.supersedeLocked()
	d.gen++
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Debouncer) supersedeLocked() {
	if d.timer != nil && d.timer.Stop() {
		// The callback will never run, so release its slot here.
		d.wg.Done()
	}
	d.timer = nil
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
