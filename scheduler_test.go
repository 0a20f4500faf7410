package threatscope

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestSchedulerRunsInDueOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.Schedule("a", 300*time.Millisecond, func() error { got = append(got, "300"); return nil })
	s.Schedule("a", 100*time.Millisecond, func() error { got = append(got, "100"); return nil })
	s.Schedule("a", 200*time.Millisecond, func() error { got = append(got, "200"); return nil })

	s.Advance(time.Second)

	want := []string{"100", "200", "300"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if s.Now() != time.Second {
		t.Errorf("Now = %v, want 1s", s.Now())
	}
}

func TestSchedulerSameDelayFIFO(t *testing.T) {
	s := NewScheduler()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		s.Schedule("a", 0, func() error { got = append(got, i); return nil })
	}
	s.Advance(0)
	if !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v, want scheduling order", got)
	}
}

func TestSchedulerNotDueYet(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.Schedule("a", 500*time.Millisecond, func() error { fired = true; return nil })

	s.Advance(499 * time.Millisecond)
	if fired {
		t.Fatal("effect fired before its delay elapsed")
	}
	s.Advance(time.Millisecond)
	if !fired {
		t.Fatal("effect did not fire at its due time")
	}
}

func TestSchedulerNegativeDelay(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)
	fired := false
	s.Schedule("a", -time.Second, func() error { fired = true; return nil })
	if d := s.PendingDelays("a"); len(d) != 1 || d[0] != 0 {
		t.Errorf("PendingDelays = %v, want [0]", d)
	}
	s.Advance(0)
	if !fired {
		t.Error("negative delay should fire on the next Advance")
	}
}

func TestSchedulerCancelIdempotent(t *testing.T) {
	s := NewScheduler()
	fired := false
	h := s.Schedule("a", time.Millisecond, func() error { fired = true; return nil })
	if !h.Valid() {
		t.Fatal("handle should be valid")
	}

	s.Cancel(h)
	s.Cancel(h)
	s.Cancel(Handle{})
	s.Advance(time.Second)

	if fired {
		t.Error("cancelled effect fired")
	}
	if s.Pending("a") != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending("a"))
	}
}

func TestSchedulerCancelAfterFire(t *testing.T) {
	s := NewScheduler()
	n := 0
	h := s.Schedule("a", 0, func() error { n++; return nil })
	s.Advance(0)
	s.Cancel(h)
	s.Advance(time.Second)
	if n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}
}

func TestSchedulerCancelAllByOwner(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.Schedule("a", 10*time.Millisecond, func() error { got = append(got, "a1"); return nil })
	s.Schedule("b", 10*time.Millisecond, func() error { got = append(got, "b1"); return nil })
	s.Schedule("a", 20*time.Millisecond, func() error { got = append(got, "a2"); return nil })

	if n := s.CancelAll("a"); n != 2 {
		t.Errorf("CancelAll = %d, want 2", n)
	}
	if n := s.CancelAll("a"); n != 0 {
		t.Errorf("second CancelAll = %d, want 0", n)
	}
	s.Advance(time.Second)

	if !slices.Equal(got, []string{"b1"}) {
		t.Errorf("fired = %v, want [b1]", got)
	}
}

func TestSchedulerChainedDueEffectRunsSameAdvance(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.Schedule("a", 100*time.Millisecond, func() error {
		got = append(got, "first")
		s.Schedule("a", 100*time.Millisecond, func() error {
			got = append(got, "second")
			return nil
		})
		return nil
	})

	s.Advance(time.Second)
	if !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("fired = %v, want [first second]", got)
	}
}

func TestSchedulerCancelledByEarlierEffect(t *testing.T) {
	s := NewScheduler()
	fired := false
	var later Handle
	s.Schedule("a", 10*time.Millisecond, func() error {
		s.Cancel(later)
		return nil
	})
	later = s.Schedule("a", 20*time.Millisecond, func() error { fired = true; return nil })

	s.Advance(time.Second)
	if fired {
		t.Error("effect cancelled earlier in the same Advance still fired")
	}
}

func TestSchedulerErrorsAreCounted(t *testing.T) {
	s := NewScheduler()
	after := false
	s.Schedule("a", 0, func() error { return errors.New("boom") })
	s.Schedule("a", 0, func() error { after = true; return nil })

	s.Advance(0)

	if s.Failed() != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed())
	}
	if !after {
		t.Error("a failing effect must not stop later effects")
	}
}

func TestSchedulerPendingDelays(t *testing.T) {
	s := NewScheduler()
	noop := func() error { return nil }
	s.Schedule("a", 500*time.Millisecond, noop)
	s.Schedule("a", 0, noop)
	s.Schedule("b", 100*time.Millisecond, noop)

	want := []time.Duration{0, 500 * time.Millisecond}
	if got := s.PendingDelays("a"); !slices.Equal(got, want) {
		t.Errorf("PendingDelays = %v, want %v", got, want)
	}

	s.Advance(200 * time.Millisecond)
	want = []time.Duration{300 * time.Millisecond}
	if got := s.PendingDelays("a"); !slices.Equal(got, want) {
		t.Errorf("PendingDelays after 200ms = %v, want %v", got, want)
	}
}

func TestSchedulerNilEffectPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil effect")
		}
	}()
	NewScheduler().Schedule("a", 0, nil)
}

func TestSchedulerNestedEffectTimedFromDueTime(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.Schedule("a", 100*time.Millisecond, func() error {
		at = append(at, s.Now())
		s.Schedule("a", 100*time.Millisecond, func() error {
			at = append(at, s.Now())
			return nil
		})
		return nil
	})

	s.Advance(250 * time.Millisecond)

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if !slices.Equal(at, want) {
		t.Errorf("fired at %v, want %v", at, want)
	}
	if s.Pending("a") != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending("a"))
	}
	if s.Now() != 250*time.Millisecond {
		t.Errorf("Now = %v, want 250ms", s.Now())
	}
}

func TestSchedulerNestedEffectBeyondAdvanceWaits(t *testing.T) {
	s := NewScheduler()
	s.Schedule("a", 100*time.Millisecond, func() error {
		s.Schedule("a", 200*time.Millisecond, func() error { return nil })
		return nil
	})

	s.Advance(250 * time.Millisecond)

	want := []time.Duration{50 * time.Millisecond}
	if got := s.PendingDelays("a"); !slices.Equal(got, want) {
		t.Errorf("PendingDelays = %v, want %v", got, want)
	}
}
