package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/world"
)

// detectReactions asks the gateway how walking agents near an object react.
// Each (agent, object) pair is limited to one request per cooldown.
func (g *Game) detectReactions(now time.Time) {
	objs := g.objects.All()
	if len(objs) == 0 {
		return
	}
	reach := g.cfg.Reactions.Distance

	for _, a := range g.agents() {
		if a.behavior.State != components.StateWalking {
			continue
		}
		for _, obj := range objs {
			if world.Distance(a.point(), obj.Pos()) >= reach {
				continue
			}
			if g.saturated() {
				return
			}
			lock := reactionLock(a.persona.ID, obj.ID)
			if !g.locks.TryAcquire(lock, now) {
				continue
			}
			g.requestReaction(a, obj, lock, now)
		}
	}
}

func (g *Game) requestReaction(a agent, obj world.Object, lock string, dispatched time.Time) {
	agentID := a.persona.ID
	req := gateway.ReactionRequest{
		Agent:       a.profile(),
		ObjectName:  obj.Name,
		ObjectEmoji: obj.Emoji,
	}
	g.dispatch(func(ctx context.Context) completion {
		text, err := g.gateway.React(ctx, req)
		return func(now time.Time) {
			g.completeReaction(agentID, lock, dispatched, now, text, err)
		}
	})
}

// completeReaction shows the reaction and schedules the end of the cooldown.
func (g *Game) completeReaction(agentID, lock string, dispatched, now time.Time, text string, err error) {
	switch {
	case err != nil:
		slog.Warn("reaction failed", "agent", agentID, "error", err)
	case text == "":
	default:
		if _, ok := g.lookup(agentID); ok {
			g.addBubble(agentID, text, BubbleReaction, now, g.cfg.Derived.ReactionLinger)
			g.collector.Record(telemetry.EventReaction)
			g.tallies.RecordReaction(agentID)
		}
	}

	// Cooldown runs from dispatch, so a slow reply may already be past it
	wait := dispatched.Add(g.cfg.Derived.ReactionCooldown).Sub(now)
	if wait <= 0 {
		g.locks.releaseIfSince(lock, dispatched)
		return
	}
	g.sched.After(now, wait, func(time.Time) {
		g.locks.releaseIfSince(lock, dispatched)
	})
}
