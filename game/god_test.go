package game

import (
	"testing"
	"time"

	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/world"
)

func TestDecreeRepliesAreStaggered(t *testing.T) {
	gw := &stubGateway{decree: []gateway.DecreeReaction{
		{AgentName: "Ann", Reaction: "Hooray"},
		{AgentName: "Nobody", Reaction: "Who?"},
		{AgentName: "bob", Reaction: "Fine"},
		{AgentName: "Cat", Reaction: "Meow"},
	}}
	g := newTestGame(t, nil, gw)
	place(g, "ann", "Ann", 200, 200)
	place(g, "bob", "Bob", 600, 200)
	place(g, "cat", "Cat", 1000, 600)
	g.SetPaused(true)

	g.Decree("  Let there be cake  ")
	stagger := g.cfg.Derived.DecreeStagger

	g.Step(t0)
	if len(g.BubblesFor("ann")) != 1 || len(g.BubblesFor("bob")) != 0 {
		t.Fatalf("at +0: ann=%d bob=%d bubbles, want 1/0", len(g.BubblesFor("ann")), len(g.BubblesFor("bob")))
	}

	// Unmatched names take no slot, so Bob follows Ann directly
	g.Step(t0.Add(stagger))
	if got := g.BubblesFor("bob"); len(got) != 1 || got[0].Kind != BubbleDecree {
		t.Fatalf("at +1 stagger: bob bubbles = %+v", got)
	}
	if len(g.BubblesFor("cat")) != 0 {
		t.Fatal("cat replied too early")
	}

	g.Step(t0.Add(2 * stagger))
	if len(g.BubblesFor("cat")) != 1 {
		t.Error("cat reply missing at +2 stagger")
	}

	last := g.Chronicle().Tail(1)
	if len(last) != 1 || last[0].Kind != KindDecree || last[0].Text != "📜 Let there be cake" {
		t.Errorf("chronicle tail = %+v, want the decree", last)
	}
	if got := g.collector.Count(telemetry.EventDecree); got != 1 {
		t.Errorf("decrees = %d, want 1", got)
	}
}

func TestEmptyDecreeIsIgnored(t *testing.T) {
	g := newTestGame(t, nil, &stubGateway{})
	g.Decree("   ")
	if g.Chronicle().Len() != 0 || g.collector.Count(telemetry.EventDecree) != 0 {
		t.Error("blank decree was recorded")
	}
}

func TestReactionLifecycle(t *testing.T) {
	gw := &stubGateway{reaction: "What a lovely egg!"}
	g := newTestGame(t, nil, gw)
	place(g, "ann", "Ann", 400, 400)
	obj := g.objects.Spawn("Egg", "🥚", world.Point{X: 420, Y: 400}, t0)
	lock := reactionLock("ann", obj.ID)

	g.Step(t0)
	if gw.reactCalls != 1 || !g.locks.Held(lock) {
		t.Fatalf("react calls = %d held = %v, want 1 and held", gw.reactCalls, g.locks.Held(lock))
	}

	g.Step(t0.Add(time.Second))
	if got := g.BubblesFor("ann"); len(got) != 1 || got[0].Kind != BubbleReaction {
		t.Fatalf("ann bubbles = %+v, want one reaction", got)
	}
	if gw.reactCalls != 1 {
		t.Errorf("reacted again during cooldown: %d calls", gw.reactCalls)
	}

	g.SetPaused(true)
	cooldown := g.cfg.Derived.ReactionCooldown
	g.Step(t0.Add(cooldown - time.Second))
	if !g.locks.Held(lock) {
		t.Error("lock released before the cooldown")
	}
	g.Step(t0.Add(cooldown))
	if g.locks.Held(lock) {
		t.Error("lock still held after the cooldown")
	}
	if got := g.tallies.Get("ann").Reactions; got != 1 {
		t.Errorf("ann reactions = %d, want 1", got)
	}
}

func TestTalkingAgentsDoNotReact(t *testing.T) {
	gw := &stubGateway{conv: twoLines("eggs"), reaction: "Oh!"}
	g := newTestGame(t, nil, gw)
	place(g, "ann", "Ann", 400, 400)
	place(g, "bob", "Bob", 420, 400)
	g.objects.Spawn("Egg", "🥚", world.Point{X: 410, Y: 420}, t0)

	g.Step(t0)

	if gw.reactCalls != 0 {
		t.Errorf("react calls = %d, want 0 for a talking pair", gw.reactCalls)
	}
}

func TestClearObjectsReleasesReactionLocks(t *testing.T) {
	g := newTestGame(t, nil, &stubGateway{reaction: "Hm."})
	place(g, "ann", "Ann", 400, 400)
	obj := g.objects.Spawn("Egg", "🥚", world.Point{X: 420, Y: 400}, t0)

	g.Step(t0)
	g.Step(t0.Add(time.Second))
	if !g.locks.Held(reactionLock("ann", obj.ID)) {
		t.Fatal("reaction lock not taken")
	}

	if n := g.ClearObjects(); n != 1 {
		t.Fatalf("ClearObjects = %d, want 1", n)
	}
	if g.locks.Len() != 0 {
		t.Errorf("locks held after clear: %d", g.locks.Len())
	}
	if len(g.Objects()) != 0 {
		t.Error("objects remain after clear")
	}
}

func TestSpawnPresetCycles(t *testing.T) {
	g := newTestGame(t, nil, &stubGateway{})
	presets := g.cfg.Objects

	for i := 0; i <= len(presets); i++ {
		obj, ok := g.SpawnPreset()
		if !ok {
			t.Fatal("no presets")
		}
		if want := presets[i%len(presets)].Name; obj.Name != want {
			t.Errorf("spawn %d = %q, want %q", i, obj.Name, want)
		}
		if !g.villageMap.InBounds(obj.Pos()) {
			t.Errorf("object %q out of bounds", obj.Name)
		}
	}
	if got := g.collector.Count(telemetry.EventObjectSpawned); got != len(presets)+1 {
		t.Errorf("spawned = %d, want %d", got, len(presets)+1)
	}
}
