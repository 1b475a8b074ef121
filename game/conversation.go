package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/social"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/world"
)

// startConversation pairs a and b and asks the gateway for their exchange.
// The pair stays talking until the dialogue has played out.
func (g *Game) startConversation(a, b agent, now time.Time) {
	aID, bID := a.persona.ID, b.persona.ID
	lock := conversationLock(social.Key(aID, bID))
	if g.locks.Held(lock) {
		return
	}

	rel, created := g.book.GetOrCreate(aID, bID, g.tick)
	if created {
		g.chronicle.Add(g.tick, now, KindMeeting, a.persona.Name+" met "+b.persona.Name+" for the first time")
	}

	req := gateway.ConversationRequest{
		A:         a.profile(),
		B:         b.profile(),
		Type:      social.ConversationTypeFor(rel.MeetCount),
		MeetCount: rel.MeetCount,
		Stage:     rel.Stage,
		Topics:    append([]string(nil), rel.LastTopics...),
	}
	if bld, ok := g.villageMap.BuildingAt(world.Midpoint(a.point(), b.point())); ok {
		req.BuildingID = bld.ID
	}

	g.beginConversation(a, b)
	g.locks.TryAcquire(lock, now, aID, bID)
	g.collector.Record(telemetry.EventConversationStarted)

	slog.Debug("conversation started",
		"a", aID,
		"b", bID,
		"type", string(req.Type),
		"meet_count", req.MeetCount,
	)

	dispatched := now
	g.dispatch(func(ctx context.Context) completion {
		conv, err := g.gateway.Converse(ctx, req)
		return func(now time.Time) {
			g.completeConversation(aID, bID, lock, dispatched, now, conv, err)
		}
	})
}

// completeConversation applies a gateway reply. Lines become staggered
// speech bubbles; the pair is released once the last one has been shown.
func (g *Game) completeConversation(aID, bID, lock string, dispatched, now time.Time, conv gateway.Conversation, err error) {
	// Dropped by the lock safety net, possibly re-taken by a new conversation
	if since, ok := g.locks.HeldSince(lock); !ok || !since.Equal(dispatched) {
		slog.Debug("stale conversation result dropped", "a", aID, "b", bID)
		return
	}

	a, aok := g.lookup(aID)
	b, bok := g.lookup(bID)
	if err != nil || len(conv.Messages) == 0 || !aok || !bok {
		g.collector.Record(telemetry.EventConversationFailed)
		if err != nil {
			slog.Warn("conversation failed", "a", aID, "b", bID, "error", err)
		} else {
			slog.Warn("conversation empty", "a", aID, "b", bID)
		}
		g.sched.After(now, 0, func(time.Time) {
			g.releasePair(aID, bID)
			g.locks.releaseIfSince(lock, dispatched)
		})
		return
	}

	lines := conv.Messages
	if limit := g.cfg.Dialogue.MaxLines; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}

	stagger := g.cfg.Derived.DialogueStagger
	linger := g.cfg.Derived.SpeechLinger
	aName, bName := a.persona.Name, b.persona.Name
	for i, line := range lines {
		speaker := speakerFor(line.Speaker, i, aID, aName, bID, bName)
		text := line.Text
		g.sched.After(now, time.Duration(i)*stagger, func(at time.Time) {
			g.addBubble(speaker, text, BubbleSpeech, at, linger)
		})
	}

	rel, _ := g.book.GetOrCreate(aID, bID, g.tick)
	prev, next := rel.Record(conv.Topic, g.tick, g.cfg.Dialogue.TopicMaxLen, g.cfg.Relationship.MaxTopics, g.thresholds)

	g.collector.Record(telemetry.EventConversationCompleted)
	g.tallies.RecordConversation(aID)
	g.tallies.RecordConversation(bID)

	end := time.Duration(len(lines)) * stagger
	if next != prev {
		g.collector.Record(telemetry.EventStageChange)
		g.tallies.RecordStage(aID, next)
		g.tallies.RecordStage(bID, next)
		g.sched.After(now, end, func(at time.Time) {
			g.announceStage(aID, bID, aName, bName, next, at)
		})
		if next == social.Parent {
			g.sched.After(now, end+g.cfg.Derived.BirthDelay, func(at time.Time) {
				g.birth(aID, bID, at)
			})
		}
	}

	g.sched.After(now, end, func(time.Time) {
		g.releasePair(aID, bID)
		g.locks.releaseIfSince(lock, dispatched)
	})

	slog.Debug("conversation completed",
		"a", aID,
		"b", bID,
		"lines", len(lines),
		"topic", conv.Topic,
		"meet_count", rel.MeetCount,
		"stage", next.String(),
	)
}

// speakerFor maps a line to one of the pair by name, alternating when the
// name matches neither.
func speakerFor(name string, i int, aID, aName, bID, bName string) string {
	name = strings.TrimSpace(name)
	switch {
	case strings.EqualFold(name, aName):
		return aID
	case strings.EqualFold(name, bName):
		return bID
	case i%2 == 0:
		return aID
	default:
		return bID
	}
}

var stageHeadlines = map[social.Stage]string{
	social.Acquaintance: "%s and %s are now acquaintances",
	social.Friend:       "%s and %s became friends",
	social.Lover:        "%s and %s fell in love",
	social.Married:      "%s and %s got married",
	social.Parent:       "%s and %s are expecting a baby",
}

// announceStage writes the chronicle entry for a new stage and, for romantic
// stages, shows the celebration on both partners.
func (g *Game) announceStage(aID, bID, aName, bName string, stage social.Stage, now time.Time) {
	if headline, ok := stageHeadlines[stage]; ok {
		g.chronicle.Add(g.tick, now, KindStage, fmt.Sprintf(headline, aName, bName))
	}

	emoji := stage.Celebration()
	if emoji == "" {
		return
	}
	linger := g.cfg.Derived.CelebrationLinger
	for _, id := range []string{aID, bID} {
		if _, ok := g.lookup(id); ok {
			g.addBubble(id, emoji, BubbleCelebration, now, linger)
		}
	}
}
