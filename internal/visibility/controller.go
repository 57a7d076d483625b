// Package visibility implements the open/close lifecycle of the account menu:
// immediate open on enter, delayed close on leave, and cancellation of a
// pending close when the pointer comes back before the delay elapses.
package visibility

import (
	"io"
	"log/slog"
	"time"
)

// DefaultCloseDelay is the grace period between a leave event and the menu
// actually closing.
const DefaultCloseDelay = 350 * time.Millisecond

// State is the observable state of the controller.
type State int

const (
	Closed State = iota
	Open
	OpenPendingClose
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case OpenPendingClose:
		return "open-pending-close"
	default:
		return "unknown"
	}
}

// Task is a scheduled callback that can be cancelled before it runs.
type Task interface {
	Cancel()
}

// Scheduler arms delayed callbacks. Callbacks must be delivered on the same
// event loop that drives the controller.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// Option configures a Controller.
type Option func(*Controller)

// WithCloseDelay overrides DefaultCloseDelay. Non-positive values are ignored.
func WithCloseDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogout sets the collaborator invoked by Logout.
func WithLogout(fn func()) Option {
	return func(c *Controller) { c.logout = fn }
}

// WithOnChange registers a listener called after every state transition.
func WithOnChange(fn func(from, to State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the requested-open bit and at most one pending close.
// It is not safe for concurrent use; all methods and scheduled callbacks must
// run on a single event loop.
type Controller struct {
	sched    Scheduler
	delay    time.Duration
	logout   func()
	onChange func(from, to State)
	log      *slog.Logger

	requestedOpen bool
	pendingClose  Task
	disposed      bool
}

// New returns a controller in the Closed state.
func New(sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		sched: sched,
		delay: DefaultCloseDelay,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current state.
func (c *Controller) State() State {
	switch {
	case !c.requestedOpen:
		return Closed
	case c.pendingClose != nil:
		return OpenPendingClose
	default:
		return Open
	}
}

// RequestedOpen reports the user-intent bit, independent of gating.
func (c *Controller) RequestedOpen() bool { return c.requestedOpen }

// PendingClose reports whether a close timer is armed.
func (c *Controller) PendingClose() bool { return c.pendingClose != nil }

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool { return c.disposed }

// CloseDelay returns the configured grace period.
func (c *Controller) CloseDelay() time.Duration { return c.delay }

// EffectiveVisible combines the requested state with the gating result.
func (c *Controller) EffectiveVisible(permitted bool) bool {
	return c.requestedOpen && permitted
}

// EnterTrigger handles the pointer entering the avatar.
func (c *Controller) EnterTrigger() { c.enter("trigger") }

// EnterMenu handles the pointer entering the menu.
func (c *Controller) EnterMenu() { c.enter("menu") }

// LeaveTrigger handles the pointer leaving the avatar.
func (c *Controller) LeaveTrigger() { c.leave("trigger") }

// LeaveMenu handles the pointer leaving the menu.
func (c *Controller) LeaveMenu() { c.leave("menu") }

// MenuClose handles the menu asking to be dismissed through its own close
// affordance. It follows the same delayed path as a leave.
func (c *Controller) MenuClose() { c.leave("menu-close") }

// Toggle flips the requested-open bit. A pending close is left untouched.
func (c *Controller) Toggle() {
	if c.disposed {
		return
	}
	from := c.State()
	c.requestedOpen = !c.requestedOpen
	c.transition("toggle", from)
}

// Logout invokes the logout collaborator without waiting on it, then arms
// the delayed close so an acknowledgement can be shown first.
func (c *Controller) Logout() {
	if c.disposed {
		return
	}
	if c.logout != nil {
		c.logout()
	}
	c.leave("logout")
}

// Dispose cancels any pending close and makes the controller inert.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.cancelPending()
	c.disposed = true
	c.log.Debug("menu controller disposed")
}

func (c *Controller) enter(source string) {
	if c.disposed {
		return
	}
	from := c.State()
	c.cancelPending()
	c.requestedOpen = true
	c.transition("enter "+source, from)
}

func (c *Controller) leave(source string) {
	if c.disposed || c.pendingClose != nil {
		return
	}
	from := c.State()
	var task Task
	task = c.sched.Schedule(c.delay, func() { c.fire(task) })
	c.pendingClose = task
	c.transition("leave "+source, from)
}

// fire runs when a close timer elapses. Only the currently armed task may
// close; anything cancelled or superseded is ignored.
func (c *Controller) fire(task Task) {
	if c.disposed || task == nil || c.pendingClose != task {
		return
	}
	from := c.State()
	c.pendingClose = nil
	c.requestedOpen = false
	c.transition("close timer", from)
}

func (c *Controller) cancelPending() {
	if c.pendingClose == nil {
		return
	}
	c.pendingClose.Cancel()
	c.pendingClose = nil
}

func (c *Controller) transition(event string, from State) {
	to := c.State()
	if from == to {
		return
	}
	c.log.Debug("menu transition", "event", event, "from", from.String(), "to", to.String())
	if c.onChange != nil {
		c.onChange(from, to)
	}
}
