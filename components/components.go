// Package components defines the ECS components that make up a villager.
//
// An agent is one entity carrying Persona, Position, Motion and Behavior.
// Systems in the game package query them through ark filters and look
// individual agents up through the id index kept next to the world.
package components

// Persona holds identity and ancestry. It never changes after spawn.
type Persona struct {
	ID          string `inspect:"label"`
	Name        string `inspect:"label"`
	Emoji       string
	Color       string // "#rrggbb"
	Personality string // opaque, handed to the gateway verbatim
	HomeID      string `inspect:"label"` // building id, empty when homeless
	Baby        bool   `inspect:"bool"`
	Parents     [2]string
}

// Behavior is the per-agent state machine.
// TalkingTo is set exactly when State is StateTalking.
type Behavior struct {
	State     State  `inspect:"label"`
	TalkingTo string `inspect:"label"`
}

// Talking reports whether the agent is locked in a conversation.
func (b *Behavior) Talking() bool {
	return b.State == StateTalking
}

// StartTalking pairs the agent with peer.
func (b *Behavior) StartTalking(peer string) {
	b.State = StateTalking
	b.TalkingTo = peer
}

// StopTalking returns the agent to walking.
func (b *Behavior) StopTalking() {
	b.State = StateWalking
	b.TalkingTo = ""
}
