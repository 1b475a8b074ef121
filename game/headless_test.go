package game

import (
	"context"
	"testing"
	"time"

	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/telemetry"
)

// slowGateway answers like its stub after delay of wall-clock time.
type slowGateway struct {
	*stubGateway
	delay time.Duration
}

func (s slowGateway) Converse(ctx context.Context, req gateway.ConversationRequest) (gateway.Conversation, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return gateway.Conversation{}, ctx.Err()
	}
	return s.stubGateway.Converse(ctx, req)
}

func TestOutstandingRequestsHoldBackEncounters(t *testing.T) {
	var queued []func()
	cfg := testConfig()
	cfg.Gateway.MaxInFlight = 1
	g := NewGameWithOptions(Options{
		Config:     cfg,
		Gateway:    &stubGateway{conv: twoLines("queue")},
		Dispatcher: func(task func()) { queued = append(queued, task) },
		Clock:      func() time.Time { return t0 },
	})
	place(g, "ann", "Ann", 400, 400)
	place(g, "bob", "Bob", 430, 400)
	place(g, "cat", "Cat", 400, 700)
	place(g, "dan", "Dan", 430, 700)

	g.Step(t0)
	if len(queued) != 1 || g.Outstanding() != 1 {
		t.Fatalf("requests = %d outstanding = %d, want 1 and 1", len(queued), g.Outstanding())
	}
	if mustAgent(t, g, "cat").behavior.Talking() {
		t.Fatal("second pair started while the first request was out")
	}

	// Still out: nothing new is dispatched however many ticks pass
	g.Step(t0.Add(time.Second))
	if len(queued) != 1 {
		t.Fatalf("requests = %d while saturated, want 1", len(queued))
	}

	queued[0]()
	g.Step(t0.Add(2 * time.Second))
	if len(queued) != 2 {
		t.Fatalf("requests = %d after the reply landed, want 2", len(queued))
	}
	if !mustAgent(t, g, "cat").behavior.Talking() {
		t.Error("second pair not started once a slot was free")
	}

	queued[1]()
	g.Close()
}

func TestRunHeadlessRealtimeLandsSlowReplies(t *testing.T) {
	cfg := testConfig()
	gw := slowGateway{stubGateway: &stubGateway{conv: twoLines("slow")}, delay: 30 * time.Millisecond}
	g := NewGameWithOptions(Options{Config: cfg, Gateway: gw, Seed: 7})
	t.Cleanup(g.Close)
	place(g, "ann", "Ann", 400, 400)
	place(g, "bob", "Bob", 430, 400)

	start := time.Now()
	if err := g.RunHeadless(context.Background(), 30, true); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	// 29 paced waits of 1/60s
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Errorf("30 realtime ticks took %v, want about half a second", elapsed)
	}

	rel := g.Relationship("ann", "bob")
	if rel == nil || rel.MeetCount != 1 {
		t.Fatalf("relationship = %+v, want one completed meeting", rel)
	}
	if got := g.collector.Count(telemetry.EventLockExpired); got != 0 {
		t.Errorf("expired locks = %d, want 0", got)
	}
	if gw.converseCalls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.converseCalls)
	}
}

func TestRunHeadlessStopsOnContext(t *testing.T) {
	g := newTestGame(t, nil, &stubGateway{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.RunHeadless(ctx, 0, false); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if g.Tick() != 0 {
		t.Errorf("tick = %d after a cancelled run, want 0", g.Tick())
	}
}

func TestSimulatedClockAdvancesPerTick(t *testing.T) {
	cfg := testConfig()
	var g *Game
	clock := SimulatedClock(t0, cfg.Derived.TickDuration, &g)
	if got := clock(); !got.Equal(t0) {
		t.Fatalf("clock before the game exists = %v, want start", got)
	}

	g = NewGameWithOptions(Options{Config: cfg, Gateway: &stubGateway{}, Dispatcher: SyncDispatcher, Clock: clock})
	t.Cleanup(g.Close)
	if err := g.RunHeadless(context.Background(), 3, false); err != nil {
		t.Fatal(err)
	}
	// The third step ran at start + 3 ticks
	if want := t0.Add(3 * cfg.Derived.TickDuration); !g.Now().Equal(want) {
		t.Errorf("now = %v, want %v", g.Now(), want)
	}
}
