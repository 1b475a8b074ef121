// Package game is the village simulation: the agent registry, the tick engine
// and the handlers that apply conversation, reaction and decree results.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/config"
	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/social"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/world"
)

// Options configures a Game. Zero values fall back to defaults.
type Options struct {
	Config     *config.Config  // nil uses config.Default()
	Gateway    gateway.Gateway // nil uses gateway.NewScripted(Seed)
	Seed       int64
	Dispatcher Dispatcher       // nil uses GoDispatcher
	Clock      func() time.Time // drives Update; nil uses time.Now
	Buildings  []world.Building // nil uses the config list, or the built-in catalog

	LogStats      bool
	OutputManager *telemetry.OutputManager
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	world       *ecs.World
	agentMapper *ecs.Map4[components.Persona, components.Position, components.Motion, components.Behavior]
	agentFilter *ecs.Filter4[components.Persona, components.Position, components.Motion, components.Behavior]
	byID        map[string]ecs.Entity
	order       []string // agent ids in spawn order

	villageMap *world.Map
	book       *social.Book
	thresholds social.Thresholds
	objects    world.Objects
	babies     *BabyFactory

	locks   *Locks
	sched   scheduler
	inbox   mailbox
	gateway gateway.Gateway

	dispatcher Dispatcher
	ctx        context.Context
	cancel     context.CancelFunc
	inflight   sync.WaitGroup
	// requests dispatched whose completion has not been applied yet
	outstanding int

	bubbles   []Bubble
	chronicle *Chronicle
	sinks     []FrameSink

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	tallies          *telemetry.TallyBook
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool

	// State
	clock          func() time.Time
	now            time.Time
	tick           int64
	steps          int64
	paused         bool
	stepsPerUpdate int

	// Preset cursors for the god controls
	objectPreset int
	decreePreset int
}

// NewGame creates a game from the embedded defaults with the scripted gateway.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions creates a new game and spawns the founding villagers.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	gw := opts.Gateway
	if gw == nil {
		gw = gateway.NewScripted(opts.Seed)
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = GoDispatcher
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	buildings := opts.Buildings
	if buildings == nil {
		buildings = buildingsFromConfig(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())

	g := &Game{
		cfg:        cfg,
		rng:        rng,
		world:      ecs.NewWorld(),
		byID:       make(map[string]ecs.Entity),
		villageMap: world.NewMap(mapConfig(cfg), buildings, rng),
		book:       social.NewBook(),
		thresholds: thresholds(cfg),
		babies:     NewBabyFactory(cfg.Baby, rng),
		locks:      NewLocks(),
		gateway:    gw,
		dispatcher: dispatcher,
		ctx:        ctx,
		cancel:     cancel,
		chronicle:  NewChronicle(cfg.Chronicle.Size),

		collector:        telemetry.NewCollector(seconds(cfg.Telemetry.StatsWindow), cfg.Derived.TickDuration),
		perfCollector:    telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		tallies:          telemetry.NewTallyBook(),
		outputManager:    opts.OutputManager,
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,

		clock:          clock,
		stepsPerUpdate: 1,
	}
	g.agentMapper = ecs.NewMap4[components.Persona, components.Position, components.Motion, components.Behavior](g.world)
	g.agentFilter = ecs.NewFilter4[components.Persona, components.Position, components.Motion, components.Behavior](g.world)

	if g.outputManager != nil {
		g.chronicle.OnAdd(func(e ChronicleEntry) {
			if err := g.outputManager.WriteChronicle(e.Record()); err != nil {
				slog.Error("failed to write chronicle", "error", err)
			}
		})
	}

	g.now = clock()
	g.spawnInitialPopulation()

	slog.Info("village ready",
		"agents", len(g.order),
		"buildings", len(buildings),
		"seed", opts.Seed,
	)

	return g
}

// Update runs stepsPerUpdate ticks at the current clock time. Used by the
// windowed loop; headless runs and tests call Step directly.
func (g *Game) Update() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step(g.clock())
	}
}

// Close cancels in-flight gateway requests and waits for their goroutines.
func (g *Game) Close() {
	g.cancel()
	g.inflight.Wait()
	if g.outputManager != nil {
		if err := g.outputManager.WriteTallies(g.tallies.All()); err != nil {
			slog.Error("failed to write agent tallies", "error", err)
		}
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Now returns the time of the last step.
func (g *Game) Now() time.Time {
	return g.now
}

// Paused reports whether movement and encounters are suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes movement, encounters and reactions.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// StepsPerUpdate returns how many ticks Update runs per call.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets how many ticks Update runs per call (1-10).
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 10))
}

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Map returns the village map.
func (g *Game) Map() *world.Map {
	return g.villageMap
}

// Relationships returns every relationship sorted by key.
func (g *Game) Relationships() []*social.Relationship {
	return g.book.All()
}

// Relationship returns the relationship between a and b, or nil before they meet.
func (g *Game) Relationship(a, b string) *social.Relationship {
	return g.book.Get(a, b)
}

// Objects returns the live world objects.
func (g *Game) Objects() []world.Object {
	return g.objects.All()
}

// Bubbles returns the visible bubbles, oldest first.
func (g *Game) Bubbles() []Bubble {
	return g.bubbles
}

// Chronicle returns the narrative log.
func (g *Game) Chronicle() *Chronicle {
	return g.chronicle
}

// Locks exposes the pending request keys.
func (g *Game) Locks() *Locks {
	return g.locks
}

// Outstanding returns the number of gateway requests whose results have not
// been applied yet.
func (g *Game) Outstanding() int {
	return g.outstanding
}

// PendingEvents returns the number of scheduled events not yet run.
func (g *Game) PendingEvents() int {
	return g.sched.Len()
}

// AddSink registers a frame consumer.
func (g *Game) AddSink(s FrameSink) {
	g.sinks = append(g.sinks, s)
}
