package game

import (
	"container/heap"
	"time"
)

// event is a callback due at a point in simulated time.
type event struct {
	due time.Time
	seq uint64
	fn  func(now time.Time)
}

type eventHeap []event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = event{}
	*h = old[:n-1]
	return e
}

// scheduler runs delayed callbacks from the tick loop. Events due at the same
// instant run in the order they were scheduled.
type scheduler struct {
	events eventHeap
	seq    uint64
}

// After schedules fn to run d after now. Negative delays run on the next RunDue.
func (s *scheduler) After(now time.Time, d time.Duration, fn func(now time.Time)) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.events, event{due: now.Add(d), seq: s.seq, fn: fn})
}

// RunDue runs every event due at or before now, including events scheduled by
// the callbacks themselves, and returns how many ran.
func (s *scheduler) RunDue(now time.Time) int {
	ran := 0
	for len(s.events) > 0 && !s.events[0].due.After(now) {
		e := heap.Pop(&s.events).(event)
		e.fn(now)
		ran++
	}
	return ran
}

// Len returns the number of pending events.
func (s *scheduler) Len() int {
	return len(s.events)
}
