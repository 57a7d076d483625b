package visibility

import "time"

// Pending describes a scheduled callback waiting for its host to deliver it.
type Pending struct {
	ID    uint64
	Delay time.Duration
}

// Deferred is a Scheduler for hosts that own their event loop. Scheduled
// callbacks are not run on a separate goroutine: the host drains the queue,
// waits out each delay its own way and calls Fire with the ID on the loop.
type Deferred struct {
	next   uint64
	live   map[uint64]func()
	queued []Pending
}

// NewDeferred returns an empty Deferred scheduler.
func NewDeferred() *Deferred {
	return &Deferred{live: make(map[uint64]func())}
}

type deferredTask struct {
	d  *Deferred
	id uint64
}

func (t *deferredTask) Cancel() {
	delete(t.d.live, t.id)
}

// Schedule registers fn to run when Fire(id) is called for the returned task.
func (d *Deferred) Schedule(delay time.Duration, fn func()) Task {
	d.next++
	id := d.next
	d.live[id] = fn
	d.queued = append(d.queued, Pending{ID: id, Delay: delay})
	return &deferredTask{d: d, id: id}
}

// Drain returns callbacks scheduled since the previous Drain.
func (d *Deferred) Drain() []Pending {
	if len(d.queued) == 0 {
		return nil
	}
	out := d.queued
	d.queued = nil
	return out
}

// Fire runs the callback for id if it is still live. It reports whether a
// callback ran. Each ID fires at most once.
func (d *Deferred) Fire(id uint64) bool {
	fn, ok := d.live[id]
	if !ok {
		return false
	}
	delete(d.live, id)
	fn()
	return true
}

// Live reports how many scheduled callbacks are neither fired nor cancelled.
func (d *Deferred) Live() int {
	return len(d.live)
}
