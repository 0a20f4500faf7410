package threatscope

import (
	"container/heap"
	"slices"
	"time"
)

// EffectFunc is a timed action. A returned error is swallowed by the
// scheduler: effects are cosmetic and never retried.
type EffectFunc func() error

// Handle identifies a scheduled effect. The zero Handle refers to nothing and
// may be cancelled safely.
type Handle struct {
	id uint64
}

// Valid reports whether h was returned by Schedule.
func (h Handle) Valid() bool {
	return h.id != 0
}

type effect struct {
	id    uint64
	due   time.Duration
	owner string
	fn    EffectFunc
	index int // position in the heap, -1 once popped
}

// effectQueue orders effects by due time, then by submission order.
type effectQueue []*effect

func (q effectQueue) Len() int { return len(q) }

func (q effectQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].id < q[j].id
}

func (q effectQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *effectQueue) Push(x any) {
	e := x.(*effect)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *effectQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler issues effects at relative delays on a virtual clock. It never
// blocks: the host advances it once per tick with Advance, and every due
// effect runs on the caller's goroutine.
//
// There is no global scheduler. Each Engine owns one and callers drive it.
type Scheduler struct {
	now     time.Duration
	nextID  uint64
	queue   effectQueue
	pending map[uint64]*effect
	failed  int
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[uint64]*effect)}
}

// Now returns the scheduler's virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Schedule queues fn to run delay after the current virtual time. Negative
// delays are treated as zero. Effects with equal due times run in the order
// they were scheduled. The effect is tagged with owner so it can be
// cancelled together with its siblings via CancelAll.
func (s *Scheduler) Schedule(owner string, delay time.Duration, fn EffectFunc) Handle {
	if fn == nil {
		panic("threatscope: cannot schedule nil effect")
	}
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	e := &effect{id: s.nextID, due: s.now + delay, owner: owner, fn: fn}
	heap.Push(&s.queue, e)
	s.pending[e.id] = e
	return Handle{id: e.id}
}

// Cancel removes a pending effect. Cancelling an effect that already fired,
// was already cancelled, or the zero Handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	e, ok := s.pending[h.id]
	if !ok {
		return
	}
	s.remove(e)
}

// CancelAll cancels every pending effect tagged with owner and returns how
// many were removed.
func (s *Scheduler) CancelAll(owner string) int {
	n := 0
	for _, e := range s.pending {
		if e.owner == owner {
			s.remove(e)
			n++
		}
	}
	return n
}

func (s *Scheduler) remove(e *effect) {
	delete(s.pending, e.id)
	if e.index >= 0 {
		heap.Remove(&s.queue, e.index)
	}
}

// Advance moves the clock forward by dt and runs every effect that is due,
// in due-time order. While an effect runs, Now reports its due time, so
// effects it schedules are timed from there; those that fall inside dt run
// within the same call. An effect cancelled by an earlier effect in the same
// Advance never runs.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now
	if dt > 0 {
		target += dt
	}
	for len(s.queue) > 0 && s.queue[0].due <= target {
		e := heap.Pop(&s.queue).(*effect)
		delete(s.pending, e.id)
		if e.due > s.now {
			s.now = e.due
		}
		if err := e.fn(); err != nil {
			s.failed++
			debugf("effect %d (%s) skipped: %v", e.id, e.owner, err)
		}
	}
	s.now = target
}

// Pending returns the number of outstanding effects tagged with owner.
func (s *Scheduler) Pending(owner string) int {
	n := 0
	for _, e := range s.pending {
		if e.owner == owner {
			n++
		}
	}
	return n
}

// PendingDelays returns the remaining delay of every outstanding effect
// tagged with owner, in the order they will fire.
func (s *Scheduler) PendingDelays(owner string) []time.Duration {
	effects := make([]*effect, 0, len(s.pending))
	for _, e := range s.pending {
		if e.owner == owner {
			effects = append(effects, e)
		}
	}
	slices.SortFunc(effects, func(a, b *effect) int {
		if a.due != b.due {
			if a.due < b.due {
				return -1
			}
			return 1
		}
		if a.id < b.id {
			return -1
		}
		return 1
	})
	delays := make([]time.Duration, len(effects))
	for i, e := range effects {
		delays[i] = e.due - s.now
	}
	return delays
}

// Failed returns how many effects returned an error since creation.
func (s *Scheduler) Failed() int {
	return s.failed
}
