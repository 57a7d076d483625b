package visibility

import (
	"sort"
	"testing"
	"time"
)

// fakeClock is a Scheduler driven by virtual time.
type fakeClock struct {
	now   time.Duration
	tasks []*fakeTask
}

type fakeTask struct {
	at        time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (t *fakeTask) Cancel() { t.cancelled = true }

func (f *fakeClock) Schedule(d time.Duration, fn func()) Task {
	t := &fakeTask{at: f.now + d, fn: fn}
	f.tasks = append(f.tasks, t)
	return t
}

// Advance moves virtual time forward, running due tasks in order.
func (f *fakeClock) Advance(d time.Duration) {
	target := f.now + d
	sort.SliceStable(f.tasks, func(i, j int) bool { return f.tasks[i].at < f.tasks[j].at })
	for _, t := range f.tasks {
		if t.at > target {
			break
		}
		if t.cancelled || t.fired {
			continue
		}
		f.now = t.at
		t.fired = true
		t.fn()
	}
	f.now = target
}

func (f *fakeClock) live() int {
	n := 0
	for _, t := range f.tasks {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

func newTestController(opts ...Option) (*Controller, *fakeClock) {
	clock := &fakeClock{}
	return New(clock, opts...), clock
}

func TestNewControllerStartsClosed(t *testing.T) {
	c, _ := newTestController()
	if c.State() != Closed {
		t.Fatalf("initial state = %v, want closed", c.State())
	}
	if c.RequestedOpen() || c.PendingClose() {
		t.Error("new controller should have no requested open and no pending close")
	}
	if c.CloseDelay() != DefaultCloseDelay {
		t.Errorf("delay = %v, want %v", c.CloseDelay(), DefaultCloseDelay)
	}
}

func TestEnterOpensImmediately(t *testing.T) {
	for _, enter := range []struct {
		name string
		fn   func(*Controller)
	}{
		{"trigger", (*Controller).EnterTrigger},
		{"menu", (*Controller).EnterMenu},
	} {
		t.Run(enter.name, func(t *testing.T) {
			c, _ := newTestController()
			enter.fn(c)
			if c.State() != Open {
				t.Errorf("state = %v, want open", c.State())
			}
		})
	}
}

func TestLeaveClosesAfterDelay(t *testing.T) {
	c, clock := newTestController()
	c.EnterTrigger()
	c.LeaveTrigger()

	if c.State() != OpenPendingClose {
		t.Fatalf("state after leave = %v, want open-pending-close", c.State())
	}

	clock.Advance(349 * time.Millisecond)
	if c.State() != OpenPendingClose {
		t.Fatalf("state at 349ms = %v, want open-pending-close", c.State())
	}

	clock.Advance(time.Millisecond)
	if c.State() != Closed {
		t.Fatalf("state at 350ms = %v, want closed", c.State())
	}
	if c.PendingClose() {
		t.Error("pending close should be cleared after firing")
	}
}

func TestEnterBeforeDelayCancelsClose(t *testing.T) {
	c, clock := newTestController()
	c.EnterTrigger()
	c.LeaveTrigger()
	clock.Advance(200 * time.Millisecond)
	c.EnterMenu()

	if c.State() != Open {
		t.Fatalf("state after re-enter = %v, want open", c.State())
	}
	clock.Advance(time.Second)
	if c.State() != Open {
		t.Errorf("cancelled timer closed the menu: state = %v", c.State())
	}
	if clock.live() != 0 {
		t.Errorf("live timers = %d, want 0", clock.live())
	}
}

func TestSecondLeaveDoesNotRearm(t *testing.T) {
	var closes int
	c, clock := newTestController(WithOnChange(func(from, to State) {
		if to == Closed {
			closes++
		}
	}))
	c.EnterTrigger()
	c.LeaveTrigger()
	clock.Advance(300 * time.Millisecond)
	c.LeaveMenu()

	if len(clock.tasks) != 1 {
		t.Fatalf("scheduled tasks = %d, want 1", len(clock.tasks))
	}

	// The delay is measured from the first leave, not reset by the second.
	clock.Advance(50 * time.Millisecond)
	if c.State() != Closed {
		t.Fatalf("state = %v, want closed at 350ms after first leave", c.State())
	}
	clock.Advance(time.Second)
	if closes != 1 {
		t.Errorf("close transitions = %d, want 1", closes)
	}
}

func TestToggleIgnoresPendingClose(t *testing.T) {
	c, clock := newTestController()
	c.Toggle()
	if c.State() != Open {
		t.Fatalf("state after toggle = %v, want open", c.State())
	}
	c.Toggle()
	if c.State() != Closed {
		t.Fatalf("state after second toggle = %v, want closed", c.State())
	}

	c.EnterTrigger()
	c.LeaveTrigger()
	c.Toggle()
	if c.RequestedOpen() {
		t.Fatal("toggle from pending close should close")
	}
	if !c.PendingClose() {
		t.Error("toggle must not cancel the pending close")
	}
	clock.Advance(DefaultCloseDelay)
	if c.State() != Closed || c.PendingClose() {
		t.Errorf("state = %v pending = %v, want closed with no timer", c.State(), c.PendingClose())
	}
}

func TestToggleTwiceReturnsToClosedRegardlessOfGating(t *testing.T) {
	for _, permitted := range []bool{false, true} {
		c, _ := newTestController()
		c.Toggle()
		c.Toggle()
		if c.State() != Closed {
			t.Errorf("permitted=%v: state = %v, want closed", permitted, c.State())
		}
		if c.EffectiveVisible(permitted) {
			t.Errorf("permitted=%v: effective visibility should be false", permitted)
		}
	}
}

func TestNotPermittedNeverEffectivelyVisible(t *testing.T) {
	c, _ := newTestController()
	for i := 0; i < 4; i++ {
		c.Toggle()
		if c.RequestedOpen() != (i%2 == 0) {
			t.Fatalf("toggle %d: requested open = %v", i, c.RequestedOpen())
		}
		if c.EffectiveVisible(false) {
			t.Fatalf("toggle %d: menu visible while not permitted", i)
		}
	}
}

func TestLogoutInvokesCollaboratorThenDelaysClose(t *testing.T) {
	calls := 0
	c, clock := newTestController(WithLogout(func() { calls++ }))
	c.EnterMenu()
	c.Logout()

	if calls != 1 {
		t.Fatalf("logout calls = %d, want 1", calls)
	}
	if c.State() != OpenPendingClose {
		t.Fatalf("state after logout = %v, want open-pending-close", c.State())
	}
	clock.Advance(DefaultCloseDelay)
	if c.State() != Closed {
		t.Errorf("state = %v, want closed", c.State())
	}
}

func TestLogoutWithoutCollaborator(t *testing.T) {
	c, _ := newTestController()
	c.EnterMenu()
	c.Logout()
	if c.State() != OpenPendingClose {
		t.Errorf("state = %v, want open-pending-close", c.State())
	}
}

func TestMenuCloseIsDelayed(t *testing.T) {
	c, clock := newTestController()
	c.Toggle()
	c.MenuClose()
	if c.State() != OpenPendingClose {
		t.Fatalf("state = %v, want open-pending-close", c.State())
	}
	clock.Advance(DefaultCloseDelay)
	if c.State() != Closed {
		t.Errorf("state = %v, want closed", c.State())
	}
}

func TestDisposeStopsAllMutation(t *testing.T) {
	changes := 0
	c, clock := newTestController(WithOnChange(func(from, to State) { changes++ }))
	c.EnterTrigger()
	c.LeaveTrigger()
	before := changes

	c.Dispose()
	if clock.live() != 0 {
		t.Fatalf("live timers after dispose = %d, want 0", clock.live())
	}

	clock.Advance(time.Second)
	c.EnterTrigger()
	c.Toggle()
	c.LeaveMenu()
	c.Logout()
	c.Dispose()

	if changes != before {
		t.Errorf("observed %d transitions after dispose", changes-before)
	}
	if !c.Disposed() {
		t.Error("Disposed() = false")
	}
}

func TestStaleCallbackAfterDisposeIsIgnored(t *testing.T) {
	// A scheduler that ignores Cancel models a callback already in flight.
	c, clock := newTestController()
	c.EnterTrigger()
	c.LeaveTrigger()
	task := clock.tasks[0]
	c.Dispose()

	task.cancelled = false
	clock.Advance(time.Second)
	if !c.RequestedOpen() {
		t.Error("callback mutated state after dispose")
	}
}

func TestCustomCloseDelay(t *testing.T) {
	c, clock := newTestController(WithCloseDelay(time.Second), WithCloseDelay(0))
	c.EnterTrigger()
	c.LeaveTrigger()
	clock.Advance(999 * time.Millisecond)
	if c.State() != OpenPendingClose {
		t.Fatalf("state = %v, want open-pending-close", c.State())
	}
	clock.Advance(time.Millisecond)
	if c.State() != Closed {
		t.Errorf("state = %v, want closed", c.State())
	}
}

func TestTriggerToMenuScenario(t *testing.T) {
	var trace []State
	c, clock := newTestController(WithOnChange(func(from, to State) { trace = append(trace, to) }))

	c.EnterTrigger()
	c.LeaveTrigger()
	clock.Advance(100 * time.Millisecond)
	c.EnterMenu()
	c.LeaveMenu()
	clock.Advance(DefaultCloseDelay)

	want := []State{Open, OpenPendingClose, Open, OpenPendingClose, Closed}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %v, want %v", i, trace[i], want[i])
		}
	}
}

func TestLastEnterWins(t *testing.T) {
	type step struct {
		enter bool
		wait  time.Duration
	}
	sequences := [][]step{
		{{false, 0}, {true, 10 * time.Millisecond}},
		{{true, 0}, {false, 349 * time.Millisecond}, {true, 0}},
		{{false, 100 * time.Millisecond}, {false, 100 * time.Millisecond}, {true, 100 * time.Millisecond}},
		{{true, 0}, {false, 0}, {true, 0}, {false, 0}, {true, 0}},
	}

	for i, seq := range sequences {
		c, clock := newTestController()
		c.EnterTrigger()
		for _, s := range seq {
			clock.Advance(s.wait)
			if s.enter {
				c.EnterMenu()
			} else {
				c.LeaveMenu()
			}
		}
		clock.Advance(10 * time.Second)
		if c.State() != Open {
			t.Errorf("sequence %d: state = %v, want open", i, c.State())
		}
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Closed:           "closed",
		Open:             "open",
		OpenPendingClose: "open-pending-close",
		State(42):        "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
