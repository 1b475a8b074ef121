package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseMailbox    = "mailbox"
	PhaseScheduler  = "scheduler"
	PhaseMovement   = "movement"
	PhaseEncounters = "encounters"
	PhaseReactions  = "reactions"
	PhaseBubbles    = "bubbles"
	PhasePublish    = "publish"
	PhaseTelemetry  = "telemetry"
)

// Phases lists every step phase in pipeline order.
var Phases = []string{
	PhaseMailbox, PhaseScheduler, PhaseMovement, PhaseEncounters,
	PhaseReactions, PhaseBubbles, PhasePublish, PhaseTelemetry,
}

// PerfCollector keeps a rolling window of wall-clock tick timings.
type PerfCollector struct {
	windowSize  int
	ticks       []float64 // microseconds, ring buffer
	phases      map[string][]float64
	writeIndex  int
	sampleCount int

	tickStart  time.Time
	phaseStart time.Time
	lastPhase  string
	current    map[string]time.Duration

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		windowSize: windowSize,
		ticks:      make([]float64, windowSize),
		phases:     make(map[string][]float64, len(Phases)),
		current:    make(map[string]time.Duration, len(Phases)),
	}
	return p
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.current)
	p.lastPhase = ""
}

// StartPhase closes the previous phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.ticks[p.writeIndex] = micros(now.Sub(p.tickStart))
	for phase, d := range p.current {
		buf, ok := p.phases[phase]
		if !ok {
			buf = make([]float64, p.windowSize)
			p.phases[phase] = buf
		}
		buf[p.writeIndex] = micros(d)
	}
	// Phases skipped this tick count as zero
	for phase, buf := range p.phases {
		if _, ok := p.current[phase]; !ok {
			buf[p.writeIndex] = 0
		}
	}

	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for the windowed renderer.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickUS      float64
	MinTickUS      float64
	MaxTickUS      float64
	PhasePct       map[string]float64
	TicksPerSecond float64
	FPS            float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{PhasePct: make(map[string]float64, len(p.phases))}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return s
	}

	ticks := p.ticks[:p.sampleCount]
	s.AvgTickUS = stat.Mean(ticks, nil)
	s.MinTickUS = floats.Min(ticks)
	s.MaxTickUS = floats.Max(ticks)
	if s.AvgTickUS > 0 {
		s.TicksPerSecond = 1e6 / s.AvgTickUS
		for phase, buf := range p.phases {
			s.PhasePct[phase] = stat.Mean(buf[:p.sampleCount], nil) / s.AvgTickUS * 100
		}
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", int64(s.AvgTickUS),
		"max_tick_us", int64(s.MaxTickUS),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int64   `csv:"window_end"`
	AvgTickUS     float64 `csv:"avg_tick_us"`
	MinTickUS     float64 `csv:"min_tick_us"`
	MaxTickUS     float64 `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	MailboxPct    float64 `csv:"mailbox_pct"`
	SchedulerPct  float64 `csv:"scheduler_pct"`
	MovementPct   float64 `csv:"movement_pct"`
	EncountersPct float64 `csv:"encounters_pct"`
	ReactionsPct  float64 `csv:"reactions_pct"`
	BubblesPct    float64 `csv:"bubbles_pct"`
	PublishPct    float64 `csv:"publish_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickUS,
		MinTickUS:     s.MinTickUS,
		MaxTickUS:     s.MaxTickUS,
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		MailboxPct:    s.PhasePct[PhaseMailbox],
		SchedulerPct:  s.PhasePct[PhaseScheduler],
		MovementPct:   s.PhasePct[PhaseMovement],
		EncountersPct: s.PhasePct[PhaseEncounters],
		ReactionsPct:  s.PhasePct[PhaseReactions],
		BubblesPct:    s.PhasePct[PhaseBubbles],
		PublishPct:    s.PhasePct[PhasePublish],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
