// Package gateway is the narrow boundary between the simulation and the
// text-generation service that writes dialogue, reactions and decree replies.
//
// The engine only ever sees the Gateway interface. LLM talks to a real model
// through langchaingo, Scripted produces canned lines offline, and Limited
// rate-limits either of them.
package gateway

import (
	"context"
	"errors"

	"github.com/pthm-cable/hamlet/social"
)

var (
	// ErrEmptyReply is returned when a model answers with nothing usable.
	ErrEmptyReply = errors.New("gateway: empty reply")
	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("gateway: unknown provider")
)

// Profile is the public face of an agent handed to the model.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Personality string `json:"personality"`
}

// ConversationRequest asks for a short exchange between two agents.
type ConversationRequest struct {
	A, B       Profile
	Type       social.ConversationType
	MeetCount  int
	Stage      social.Stage
	BuildingID string // where they met, empty outdoors
	Topics     []string
}

// Line is one line of dialogue.
type Line struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Conversation is the reply to a ConversationRequest.
// No messages means the exchange failed softly.
type Conversation struct {
	Messages []Line `json:"messages"`
	Topic    string `json:"topic"`
}

// ReactionRequest asks one agent to react to a world object.
type ReactionRequest struct {
	Agent       Profile
	ObjectName  string
	ObjectEmoji string
}

// DecreeReaction is one agent's reply to a god decree.
type DecreeReaction struct {
	AgentName string `json:"agentName"`
	Emoji     string `json:"emoji"`
	Reaction  string `json:"reaction"`
}

// Gateway produces dialogue for the simulation. Implementations must be safe
// for concurrent use; the engine calls them from background goroutines.
type Gateway interface {
	Converse(ctx context.Context, req ConversationRequest) (Conversation, error)
	React(ctx context.Context, req ReactionRequest) (string, error)
	Decree(ctx context.Context, message string, agents []Profile) ([]DecreeReaction, error)
}

// LinesFor returns how many lines a conversation of type t should have.
func LinesFor(t social.ConversationType) int {
	switch t {
	case social.Greeting:
		return 2
	case social.SmallTalk:
		return 4
	case social.Deep:
		return 6
	}
	return 2
}
