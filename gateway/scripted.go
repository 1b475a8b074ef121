package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/pthm-cable/hamlet/social"
)

var scriptedLines = map[social.ConversationType][]string{
	social.Greeting: {
		"Oh! Hello there, I don't think we've met.",
		"Hi! I'm new around this corner of the village.",
		"Nice to meet you. Lovely day for a walk.",
		"Pleasure's mine. I'm sure I'll see you around.",
	},
	social.SmallTalk: {
		"Back again! Did you try the bread at the cafe?",
		"I did, it was still warm. Ravi must be up early.",
		"The fountain in the park is running again.",
		"Finally. Someone should thank whoever fixed it.",
		"Have you seen the clouds today? Like sheep.",
		"Every cloud looks like a sheep to you.",
	},
	social.Deep: {
		"Can I tell you something I haven't told anyone?",
		"Of course. You can always talk to me.",
		"Sometimes I wonder if I'm doing what I'm meant to.",
		"I think about that too, more than I admit.",
		"Maybe meant-to matters less than who we do it with.",
		"That's the nicest thing anyone has said to me.",
		"I'm glad we keep running into each other.",
		"Me too. Same time tomorrow?",
	},
}

var scriptedTopics = map[social.ConversationType][]string{
	social.Greeting:  {"first hello", "introductions", "nice weather"},
	social.SmallTalk: {"fresh bread", "the fountain", "cloud shapes", "village gossip"},
	social.Deep:      {"life purpose", "old memories", "shared dreams", "quiet worries"},
}

var scriptedReactions = []string{
	"Well, would you look at that %s!",
	"A %s? Here? How curious.",
	"I've always wanted a %s.",
	"Nobody touch the %s until I've sketched it.",
}

var scriptedDecreeReplies = []string{
	"As the sky wishes!",
	"I'll need a bigger hat for this.",
	"Finally, some excitement.",
	"Did anyone else hear that?",
}

// Scripted is an offline gateway with canned lines. It is deterministic for a seed.
type Scripted struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewScripted creates a scripted gateway.
func NewScripted(seed int64) *Scripted {
	return &Scripted{rng: rand.New(rand.NewSource(seed))}
}

func (s *Scripted) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Converse returns LinesFor(req.Type) lines alternating between the two agents.
func (s *Scripted) Converse(ctx context.Context, req ConversationRequest) (Conversation, error) {
	if err := ctx.Err(); err != nil {
		return Conversation{}, err
	}
	pool := scriptedLines[req.Type]
	if len(pool) == 0 {
		pool = scriptedLines[social.Greeting]
	}
	n := LinesFor(req.Type)
	start := s.intn(len(pool))
	conv := Conversation{Messages: make([]Line, 0, n)}
	for i := 0; i < n; i++ {
		speaker := req.A.Name
		if i%2 == 1 {
			speaker = req.B.Name
		}
		conv.Messages = append(conv.Messages, Line{Speaker: speaker, Text: pool[(start+i)%len(pool)]})
	}
	topics := scriptedTopics[req.Type]
	if len(topics) > 0 {
		conv.Topic = topics[s.intn(len(topics))]
	}
	return conv, nil
}

// React returns a canned line naming the object.
func (s *Scripted) React(ctx context.Context, req ReactionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tmpl := scriptedReactions[s.intn(len(scriptedReactions))]
	return fmt.Sprintf(tmpl, req.ObjectName), nil
}

// Decree returns one canned reply per agent, in agent order.
func (s *Scripted) Decree(ctx context.Context, message string, agents []Profile) ([]DecreeReaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]DecreeReaction, 0, len(agents))
	for _, a := range agents {
		out = append(out, DecreeReaction{
			AgentName: a.Name,
			Emoji:     a.Emoji,
			Reaction:  scriptedDecreeReplies[s.intn(len(scriptedDecreeReplies))],
		})
	}
	return out, nil
}
