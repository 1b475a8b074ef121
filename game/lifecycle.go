package game

import (
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/telemetry"
	"github.com/pthm-cable/hamlet/world"
)

// agent is a live handle to one villager's components. The pointers are valid
// until the next entity is created.
type agent struct {
	entity   ecs.Entity
	persona  *components.Persona
	pos      *components.Position
	motion   *components.Motion
	behavior *components.Behavior
}

func (a agent) point() world.Point {
	return world.Point{X: a.pos.X, Y: a.pos.Y}
}

func (a agent) profile() gateway.Profile {
	return gateway.Profile{
		ID:          a.persona.ID,
		Name:        a.persona.Name,
		Emoji:       a.persona.Emoji,
		Personality: a.persona.Personality,
	}
}

// spawnInitialPopulation creates the founding villagers from the templates.
func (g *Game) spawnInitialPopulation() {
	templates := g.cfg.Agents
	n := min(g.cfg.Population.Initial, len(templates))
	for _, t := range templates[:n] {
		persona := components.Persona{
			ID:          t.ID,
			Name:        t.Name,
			Emoji:       t.Emoji,
			Color:       t.Color,
			Personality: t.Personality,
			HomeID:      t.Home,
		}
		dest := g.villageMap.PickDestination(t.Home, "", "")
		g.spawnAgent(persona, g.villageMap.RandomPosition(), t.Speed, dest)
	}
}

// spawnAgent inserts a walking agent heading for dest.
func (g *Game) spawnAgent(p components.Persona, at world.Point, speed float64, dest world.Destination) ecs.Entity {
	at = g.villageMap.Clamp(at)
	pos := components.Position{X: at.X, Y: at.Y}
	motion := components.Motion{Speed: speed}
	motion.SetTarget(dest.X, dest.Y, dest.BuildingID)
	behavior := components.Behavior{State: components.StateWalking}

	e := g.agentMapper.NewEntity(&p, &pos, &motion, &behavior)
	g.byID[p.ID] = e
	g.order = append(g.order, p.ID)
	g.tallies.Register(p.ID, p.Name, g.tick, p.Baby)
	return e
}

// lookup re-fetches an agent by id. Callbacks use it so that results for
// agents that no longer exist are dropped.
func (g *Game) lookup(id string) (agent, bool) {
	e, ok := g.byID[id]
	if !ok || !g.world.Alive(e) {
		return agent{}, false
	}
	persona, pos, motion, behavior := g.agentMapper.Get(e)
	return agent{entity: e, persona: persona, pos: pos, motion: motion, behavior: behavior}, true
}

// agents returns handles for every villager in spawn order.
func (g *Game) agents() []agent {
	out := make([]agent, 0, len(g.order))
	for _, id := range g.order {
		if a, ok := g.lookup(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// partnerHome returns the home of id's romantic partner, or "".
func (g *Game) partnerHome(id string) string {
	partner := g.book.Partner(id)
	if partner == "" {
		return ""
	}
	if p, ok := g.lookup(partner); ok {
		return p.persona.HomeID
	}
	return ""
}

// beginConversation snaps a and b to face each other and marks them talking.
// Both sides are updated together so the pair is never half-talking.
func (g *Game) beginConversation(a, b agent) {
	pa, pb := world.FacePair(a.point(), b.point(), g.cfg.Encounter.FaceOffset)
	pa, pb = g.villageMap.Clamp(pa), g.villageMap.Clamp(pb)
	a.pos.X, a.pos.Y = pa.X, pa.Y
	b.pos.X, b.pos.Y = pb.X, pb.Y

	a.behavior.StartTalking(b.persona.ID)
	b.behavior.StartTalking(a.persona.ID)
}

// releasePair returns both agents to walking with fresh destinations.
// An agent is only released from a conversation with the other one; a
// missing agent is skipped.
func (g *Game) releasePair(aID, bID string) {
	a, aok := g.lookup(aID)
	b, bok := g.lookup(bID)
	freeA := aok && a.behavior.TalkingTo == bID
	freeB := bok && b.behavior.TalkingTo == aID
	if freeA && freeB {
		g.separate(a, b)
	}
	if freeA {
		g.release(a)
	}
	if freeB {
		g.release(b)
	}
}

// separate steps a released pair just outside talking distance so they do
// not meet again on the next tick.
func (g *Game) separate(a, b agent) {
	offset := max(g.cfg.Encounter.FaceOffset, g.cfg.Encounter.InteractionDistance/2) + 0.5
	pa, pb := world.FacePair(a.point(), b.point(), offset)
	pa, pb = g.villageMap.Clamp(pa), g.villageMap.Clamp(pb)
	a.pos.X, a.pos.Y = pa.X, pa.Y
	b.pos.X, b.pos.Y = pb.X, pb.Y
}

// release sets a walking towards a new destination.
func (g *Game) release(a agent) {
	if a.behavior.State.Frozen() {
		a.behavior.StopTalking()
	}
	dest := g.villageMap.PickDestination(a.persona.HomeID, a.motion.Destination, g.partnerHome(a.persona.ID))
	a.motion.SetTarget(dest.X, dest.Y, dest.BuildingID)
}

// birth creates the child of a and b at a's position.
func (g *Game) birth(aID, bID string, now time.Time) {
	a, aok := g.lookup(aID)
	b, bok := g.lookup(bID)
	if !aok || !bok {
		slog.Debug("birth skipped, parent missing", "a", aID, "b", bID)
		return
	}

	child, speed := g.babies.New(*a.persona, *b.persona, now)
	parents := a.persona.Name + " and " + b.persona.Name
	at := a.point()
	// a and b are stale once the child entity exists
	g.spawnAgent(child, at, speed, g.villageMap.NewTarget())

	g.tallies.RecordChild(aID)
	g.tallies.RecordChild(bID)
	g.collector.Record(telemetry.EventBirth)
	g.chronicle.Add(g.tick, now, KindBirth, child.Emoji+" "+child.Name+" was born to "+parents)
}
