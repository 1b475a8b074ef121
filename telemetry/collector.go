package telemetry

import "time"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDuration      time.Duration
	windowDurationTicks int64
	tickDuration        time.Duration

	windowStartTick int64
	counts          [numEventTypes]int
}

// NewCollector creates a collector whose windows last window of simulated time
// at tick ticks per step.
func NewCollector(window, tick time.Duration) *Collector {
	ticks := int64(1)
	if tick > 0 {
		ticks = int64(window / tick)
	}
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		windowDuration:      window,
		windowDurationTicks: ticks,
		tickDuration:        tick,
	}
}

// Record counts one event in the current window.
func (c *Collector) Record(t EventType) {
	if t < numEventTypes {
		c.counts[t]++
	}
}

// Count returns the current window's tally for t.
func (c *Collector) Count(t EventType) int {
	if t < numEventTypes {
		return c.counts[t]
	}
	return 0
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the village state observed at the end of a window.
type Sample struct {
	Agents        int
	Babies        int
	Talking       int
	Objects       int
	PendingLocks  int
	Relationships int
	MeetCounts    []float64
	StageCounts   [6]int // indexed by social.Stage
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, s Sample) WindowStats {
	meetMean, meetP50, meetMax := SummarizeMeetCounts(s.MeetCounts)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      (time.Duration(currentTick) * c.tickDuration).Seconds(),

		Agents:        s.Agents,
		Babies:        s.Babies,
		Talking:       s.Talking,
		Objects:       s.Objects,
		PendingLocks:  s.PendingLocks,
		Relationships: s.Relationships,

		ConversationsStarted:   c.counts[EventConversationStarted],
		ConversationsCompleted: c.counts[EventConversationCompleted],
		ConversationsFailed:    c.counts[EventConversationFailed],
		StageChanges:           c.counts[EventStageChange],
		Births:                 c.counts[EventBirth],
		Reactions:              c.counts[EventReaction],
		Decrees:                c.counts[EventDecree],
		ObjectsSpawned:         c.counts[EventObjectSpawned],
		LocksExpired:           c.counts[EventLockExpired],

		MeetMean: meetMean,
		MeetP50:  meetP50,
		MeetMax:  meetMax,

		Strangers:     s.StageCounts[0],
		Acquaintances: s.StageCounts[1],
		Friends:       s.StageCounts[2],
		Lovers:        s.StageCounts[3],
		Married:       s.StageCounts[4],
		Parents:       s.StageCounts[5],
	}

	c.windowStartTick = currentTick
	c.counts = [numEventTypes]int{}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
