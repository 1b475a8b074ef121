package game

import (
	"time"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/social"
	"github.com/pthm-cable/hamlet/world"
)

// AgentView is the read-only picture of one villager.
type AgentView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Emoji       string           `json:"emoji"`
	Color       string           `json:"color"`
	Personality string           `json:"personality"`
	HomeID      string           `json:"homeId,omitempty"`
	Baby        bool             `json:"baby,omitempty"`
	Parents     []string         `json:"parents,omitempty"`
	X           float64          `json:"x"`
	Y           float64          `json:"y"`
	TargetX     float64          `json:"targetX"`
	TargetY     float64          `json:"targetY"`
	Destination string           `json:"destination,omitempty"`
	Speed       float64          `json:"speed"`
	State       components.State `json:"state"`
	TalkingTo   string           `json:"talkingTo,omitempty"`
}

// RelationshipView is the read-only picture of one pair.
type RelationshipView struct {
	AgentA     string       `json:"agentA"`
	AgentB     string       `json:"agentB"`
	MeetCount  int          `json:"meetCount"`
	Stage      social.Stage `json:"stage"`
	LastTopics []string     `json:"lastTopics"`
}

// Frame is everything an observer needs to draw the village at one tick.
type Frame struct {
	Tick          int64              `json:"tick"`
	Time          time.Time          `json:"time"`
	Paused        bool               `json:"paused"`
	Agents        []AgentView        `json:"agents"`
	Relationships []RelationshipView `json:"relationships"`
	Bubbles       []Bubble           `json:"bubbles"`
	Objects       []world.Object     `json:"objects"`
	Chronicle     []ChronicleEntry   `json:"chronicle"`
}

// FrameSink receives frames from the tick goroutine. Publish must not block.
type FrameSink interface {
	Publish(Frame)
}

func viewOf(a agent) AgentView {
	v := AgentView{
		ID:          a.persona.ID,
		Name:        a.persona.Name,
		Emoji:       a.persona.Emoji,
		Color:       a.persona.Color,
		Personality: a.persona.Personality,
		HomeID:      a.persona.HomeID,
		Baby:        a.persona.Baby,
		X:           a.pos.X,
		Y:           a.pos.Y,
		TargetX:     a.motion.TargetX,
		TargetY:     a.motion.TargetY,
		Destination: a.motion.Destination,
		Speed:       a.motion.Speed,
		State:       a.behavior.State,
		TalkingTo:   a.behavior.TalkingTo,
	}
	if a.persona.Baby {
		v.Parents = []string{a.persona.Parents[0], a.persona.Parents[1]}
	}
	return v
}

// Agents returns a view of every villager in spawn order.
func (g *Game) Agents() []AgentView {
	all := g.agents()
	out := make([]AgentView, 0, len(all))
	for _, a := range all {
		out = append(out, viewOf(a))
	}
	return out
}

// Agent returns the view of one villager.
func (g *Game) Agent(id string) (AgentView, bool) {
	a, ok := g.lookup(id)
	if !ok {
		return AgentView{}, false
	}
	return viewOf(a), true
}

// Snapshot copies the current state into a Frame that is safe to hand to
// another goroutine.
func (g *Game) Snapshot() Frame {
	rels := g.book.All()
	relViews := make([]RelationshipView, 0, len(rels))
	for _, r := range rels {
		relViews = append(relViews, RelationshipView{
			AgentA:     r.AgentA,
			AgentB:     r.AgentB,
			MeetCount:  r.MeetCount,
			Stage:      r.Stage,
			LastTopics: append([]string(nil), r.LastTopics...),
		})
	}

	return Frame{
		Tick:          g.tick,
		Time:          g.now,
		Paused:        g.paused,
		Agents:        g.Agents(),
		Relationships: relViews,
		Bubbles:       append([]Bubble(nil), g.bubbles...),
		Objects:       append([]world.Object(nil), g.objects.All()...),
		Chronicle:     g.chronicle.Tail(g.cfg.Chronicle.Size),
	}
}

// publish hands a frame to every sink, every observer.every_ticks steps.
func (g *Game) publish() {
	if len(g.sinks) == 0 {
		return
	}
	every := int64(max(1, g.cfg.Observer.EveryTicks))
	if g.steps%every != 0 {
		return
	}
	frame := g.Snapshot()
	for _, s := range g.sinks {
		s.Publish(frame)
	}
}
