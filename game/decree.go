package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pthm-cable/hamlet/config"
	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/world"
)

// Decree broadcasts a message from the sky. Every villager is asked to reply
// and the replies appear one after another.
func (g *Game) Decree(message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}

	all := g.agents()
	profiles := make([]gateway.Profile, 0, len(all))
	for _, a := range all {
		profiles = append(profiles, a.profile())
	}

	g.collector.Record(telemetry.EventDecree)
	g.chronicle.Add(g.tick, g.now, KindDecree, "📜 "+message)

	g.dispatch(func(ctx context.Context) completion {
		reactions, err := g.gateway.Decree(ctx, message, profiles)
		return func(now time.Time) {
			g.completeDecree(reactions, err, now)
		}
	})
}

// completeDecree matches each reply to an agent by name. Replies for names
// nobody has are skipped and do not take a stagger slot.
func (g *Game) completeDecree(reactions []gateway.DecreeReaction, err error, now time.Time) {
	if err != nil {
		slog.Warn("decree failed", "error", err)
		return
	}

	byName := make(map[string]string, len(g.order))
	for _, a := range g.agents() {
		key := strings.ToLower(a.persona.Name)
		if _, taken := byName[key]; !taken {
			byName[key] = a.persona.ID
		}
	}

	stagger := g.cfg.Derived.DecreeStagger
	linger := g.cfg.Derived.DecreeLinger
	slot := 0
	for _, r := range reactions {
		id, ok := byName[strings.ToLower(strings.TrimSpace(r.AgentName))]
		if !ok {
			slog.Debug("decree reply for unknown villager", "name", r.AgentName)
			continue
		}
		text := r.Reaction
		g.sched.After(now, time.Duration(slot)*stagger, func(at time.Time) {
			if _, ok := g.lookup(id); ok {
				g.addBubble(id, text, BubbleDecree, at, linger)
			}
		})
		slot++
	}
}

// SpawnObject drops a prop at a random position.
func (g *Game) SpawnObject(name, emoji string) world.Object {
	obj := g.objects.Spawn(name, emoji, g.villageMap.RandomPosition(), g.now)
	g.collector.Record(telemetry.EventObjectSpawned)
	g.chronicle.Add(g.tick, g.now, KindObject, "A "+obj.Name+" "+obj.Emoji+" appeared")
	return obj
}

// SpawnPreset spawns the next configured object preset, cycling through them.
func (g *Game) SpawnPreset() (world.Object, bool) {
	presets := g.cfg.Objects
	if len(presets) == 0 {
		return world.Object{}, false
	}
	p := presets[g.objectPreset%len(presets)]
	g.objectPreset++
	return g.SpawnObject(p.Name, p.Emoji), true
}

// ClearObjects removes every prop and frees the reaction locks on them.
func (g *Game) ClearObjects() int {
	removed := g.objects.Clear()
	for _, obj := range removed {
		for _, id := range g.order {
			g.locks.Release(reactionLock(id, obj.ID))
		}
	}
	if len(removed) > 0 {
		slog.Info("objects cleared", "count", len(removed))
	}
	return len(removed)
}

// DecreePreset issues the next configured decree, cycling through them.
func (g *Game) DecreePreset() (string, bool) {
	decrees := g.cfg.Decrees
	if len(decrees) == 0 {
		return "", false
	}
	msg := decrees[g.decreePreset%len(decrees)]
	g.decreePreset++
	g.Decree(msg)
	return msg, true
}

// NextObjectPreset returns the preset SpawnPreset would use next.
func (g *Game) NextObjectPreset() (config.ObjectPreset, bool) {
	if len(g.cfg.Objects) == 0 {
		return config.ObjectPreset{}, false
	}
	return g.cfg.Objects[g.objectPreset%len(g.cfg.Objects)], true
}

// NextDecree returns the decree DecreePreset would issue next.
func (g *Game) NextDecree() (string, bool) {
	if len(g.cfg.Decrees) == 0 {
		return "", false
	}
	return g.cfg.Decrees[g.decreePreset%len(g.cfg.Decrees)], true
}
