package game

import (
	"time"

	"github.com/google/uuid"
)

// BubbleKind says what raised a bubble.
type BubbleKind uint8

const (
	BubbleSpeech BubbleKind = iota
	BubbleReaction
	BubbleCelebration
	BubbleDecree
)

var bubbleKindNames = [...]string{"speech", "reaction", "celebration", "decree"}

func (k BubbleKind) String() string {
	if int(k) < len(bubbleKindNames) {
		return bubbleKindNames[k]
	}
	return "unknown"
}

// MarshalText renders the kind by name in JSON frames.
func (k BubbleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Bubble is a short-lived line of text shown above an agent.
type Bubble struct {
	ID        string        `json:"id"`
	AgentID   string        `json:"agentId"`
	Text      string        `json:"text"`
	Kind      BubbleKind    `json:"kind"`
	CreatedAt time.Time     `json:"createdAt"`
	Duration  time.Duration `json:"duration"`
}

// Expired reports whether the bubble should be gone at now.
func (b Bubble) Expired(now time.Time) bool {
	return now.Sub(b.CreatedAt) >= b.Duration
}

// addBubble shows text above agentID from now for d.
func (g *Game) addBubble(agentID, text string, kind BubbleKind, now time.Time, d time.Duration) {
	g.bubbles = append(g.bubbles, Bubble{
		ID:        uuid.NewString(),
		AgentID:   agentID,
		Text:      text,
		Kind:      kind,
		CreatedAt: now,
		Duration:  d,
	})
}

// expireBubbles drops bubbles whose time is up, keeping order.
func (g *Game) expireBubbles(now time.Time) {
	kept := g.bubbles[:0]
	for _, b := range g.bubbles {
		if !b.Expired(now) {
			kept = append(kept, b)
		}
	}
	clear(g.bubbles[len(kept):])
	g.bubbles = kept
}

// BubblesFor returns the visible bubbles of one agent, oldest first.
func (g *Game) BubblesFor(agentID string) []Bubble {
	var out []Bubble
	for _, b := range g.bubbles {
		if b.AgentID == agentID {
			out = append(out, b)
		}
	}
	return out
}
