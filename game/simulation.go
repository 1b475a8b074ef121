package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/world"
)

// Step runs a single tick of the simulation at now.
func (g *Game) Step(now time.Time) {
	g.now = now
	g.perfCollector.StartTick()

	// 0. Apply finished requests, then anything they or earlier ticks scheduled
	g.perfCollector.StartPhase(telemetry.PhaseMailbox)
	for _, done := range g.inbox.drain() {
		done(now)
	}

	g.perfCollector.StartPhase(telemetry.PhaseScheduler)
	g.sched.RunDue(now)
	g.expireLocks(now)

	if !g.paused {
		// 1. Walk
		g.perfCollector.StartPhase(telemetry.PhaseMovement)
		g.updateMovement()

		// 2. Pairs within talking distance start a conversation
		g.perfCollector.StartPhase(telemetry.PhaseEncounters)
		g.detectEncounters(now)

		// 3. Agents near a world object react to it
		g.perfCollector.StartPhase(telemetry.PhaseReactions)
		g.detectReactions(now)
	}

	// 4. Bubbles
	g.perfCollector.StartPhase(telemetry.PhaseBubbles)
	g.expireBubbles(now)

	if !g.paused {
		g.tick++
	}
	g.steps++

	// 5. Observers
	g.perfCollector.StartPhase(telemetry.PhasePublish)
	g.publish()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// updateMovement moves walking agents towards their targets. An agent that
// has arrived picks its next destination instead of moving.
func (g *Game) updateMovement() {
	arrive := g.cfg.Movement.ArrivalThreshold

	query := g.agentFilter.Query()
	for query.Next() {
		persona, pos, motion, behavior := query.Get()

		if behavior.State.Frozen() {
			continue
		}

		from := world.Point{X: pos.X, Y: pos.Y}
		to := world.Point{X: motion.TargetX, Y: motion.TargetY}
		next, arrived := world.Step(from, to, motion.Speed, arrive)
		if arrived {
			dest := g.villageMap.PickDestination(persona.HomeID, motion.Destination, g.partnerHome(persona.ID))
			motion.SetTarget(dest.X, dest.Y, dest.BuildingID)
			continue
		}

		next = g.villageMap.Clamp(next)
		pos.X, pos.Y = next.X, next.Y
	}
}

// detectEncounters checks every unordered pair of walking agents.
func (g *Game) detectEncounters(now time.Time) {
	reach := g.cfg.Encounter.InteractionDistance
	all := g.agents()

	for i := range all {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			// a may have started talking earlier in this loop
			if a.behavior.State != components.StateWalking {
				break
			}
			if b.behavior.State != components.StateWalking {
				continue
			}
			if world.Distance(a.point(), b.point()) >= reach {
				continue
			}
			if g.saturated() {
				return
			}
			g.startConversation(a, b, now)
		}
	}
}

// expireLocks force-releases requests that never came back.
func (g *Game) expireLocks(now time.Time) {
	ttl := max(g.cfg.Derived.LockTTL, g.cfg.Derived.ReactionCooldown+g.cfg.Derived.GatewayTimeout)
	if ttl <= 0 || g.locks.Len() == 0 {
		return
	}
	for _, e := range g.locks.Expire(now, ttl) {
		slog.Warn("lock expired", "key", e.Key, "ttl", ttl)
		g.collector.Record(telemetry.EventLockExpired)
		if isConversationLock(e.Key) && len(e.Owners) == 2 {
			g.releasePair(e.Owners[0], e.Owners[1])
		}
	}
}
