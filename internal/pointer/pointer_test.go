package pointer

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestTrackerStartsIdle(t *testing.T) {
	tr := NewTracker()
	s := tr.Poll(at(0))
	if s.Active {
		t.Fatal("new tracker is active")
	}
	if s != Idle() {
		t.Errorf("state = %+v, want %+v", s, Idle())
	}
}

func TestTrackerFirstMovePublishes(t *testing.T) {
	tr := NewTracker()
	tr.Move(10, 20, at(0))
	if s := tr.Poll(at(0)); s != (State{X: 10, Y: 20, Active: true}) {
		t.Errorf("state = %+v", s)
	}
}

func TestTrackerCoalescesToMostRecent(t *testing.T) {
	tr := NewTracker()
	tr.Move(1, 1, at(0))
	tr.Move(2, 2, at(4))
	tr.Move(3, 3, at(9))

	if s := tr.Poll(at(10)); s.X != 1 {
		t.Errorf("inside window: X = %v, want 1", s.X)
	}
	if s := tr.Poll(at(16)); s.X != 3 || s.Y != 3 {
		t.Errorf("after window: state = %+v, want most recent (3,3)", s)
	}

	// A move after the window publishes immediately.
	tr.Move(4, 4, at(40))
	if s := tr.Poll(at(40)); s.X != 4 {
		t.Errorf("X = %v, want 4", s.X)
	}
}

func TestTrackerLeave(t *testing.T) {
	tr := NewTracker()
	tr.Move(5, 5, at(0))
	tr.Move(6, 6, at(5))
	tr.Leave()

	s := tr.Poll(at(100))
	if s.Active {
		t.Fatal("active after leave")
	}
	if s.X != 5 {
		t.Errorf("pending sample survived leave: %+v", s)
	}

	tr.Move(7, 7, at(101))
	if s := tr.Poll(at(101)); !s.Active || s.X != 7 {
		t.Errorf("re-entry state = %+v", s)
	}
}

func TestTrackerReentryInsideWindow(t *testing.T) {
	tr := NewTracker()
	tr.Move(5, 5, at(0))
	tr.Leave()
	tr.Move(8, 9, at(3))

	if s := tr.Poll(at(3)); s != (State{X: 8, Y: 9, Active: true}) {
		t.Errorf("re-entry at 3ms = %+v, want published (8,9)", s)
	}
}

func TestAutopilotStaysOnSurface(t *testing.T) {
	a := NewAutopilot(42)
	b := NewAutopilot(42)
	var moved bool
	px, py := a.Next(800, 600)
	b.Next(800, 600)
	for i := 0; i < 500; i++ {
		x, y := a.Next(800, 600)
		bx, by := b.Next(800, 600)
		if x != bx || y != by {
			t.Fatalf("same seed diverged at %d: (%v,%v) vs (%v,%v)", i, x, y, bx, by)
		}
		if x < 0 || x > 800 || y < 0 || y > 600 {
			t.Fatalf("sample %d off surface: (%v, %v)", i, x, y)
		}
		if x != px || y != py {
			moved = true
		}
	}
	if !moved {
		t.Error("autopilot never moved")
	}
}
