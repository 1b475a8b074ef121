package social

import (
	"sort"
	"strings"
)

// Key returns the canonical key for a pair, identical for (a,b) and (b,a).
func Key(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Relationship is the undirected record of one pair.
type Relationship struct {
	AgentA     string   `json:"agent_a"`
	AgentB     string   `json:"agent_b"`
	MeetCount  int      `json:"meet_count"`
	Stage      Stage    `json:"stage"`
	LastTopics []string `json:"last_topics"`
	FirstMet   int64    `json:"first_met"` // tick of first proximity
	LastMet    int64    `json:"last_met"`  // tick of the last completed conversation
}

// Key returns the pair key.
func (r *Relationship) Key() string {
	return Key(r.AgentA, r.AgentB)
}

// Other returns the member that is not id.
func (r *Relationship) Other(id string) string {
	if r.AgentA == id {
		return r.AgentB
	}
	return r.AgentA
}

// Record books one completed conversation: the meet count grows by exactly one,
// the topic is appended (truncated, oldest dropped beyond maxTopics) and the
// stage advances by at most one step.
func (r *Relationship) Record(topic string, tick int64, topicMaxLen, maxTopics int, th Thresholds) (prev, next Stage) {
	r.MeetCount++
	r.LastMet = tick

	if topic = Truncate(strings.TrimSpace(topic), topicMaxLen); topic != "" {
		r.LastTopics = append(r.LastTopics, topic)
		if maxTopics > 0 && len(r.LastTopics) > maxTopics {
			r.LastTopics = append([]string(nil), r.LastTopics[len(r.LastTopics)-maxTopics:]...)
		}
	}

	prev = r.Stage
	r.Stage = th.NextStage(r.MeetCount, r.Stage)
	return prev, r.Stage
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "…"
}

// Book owns every relationship of a simulation.
type Book struct {
	byKey map[string]*Relationship
}

// NewBook creates an empty relationship book.
func NewBook() *Book {
	return &Book{byKey: make(map[string]*Relationship)}
}

// Get returns the pair's relationship, or nil if they have never met.
func (b *Book) Get(a, c string) *Relationship {
	return b.byKey[Key(a, c)]
}

// GetOrCreate returns the pair's relationship, creating a stranger record on first contact.
// The bool reports whether the record was created by this call.
func (b *Book) GetOrCreate(a, c string, tick int64) (*Relationship, bool) {
	k := Key(a, c)
	if r, ok := b.byKey[k]; ok {
		return r, false
	}
	r := &Relationship{AgentA: a, AgentB: c, Stage: Stranger, FirstMet: tick}
	b.byKey[k] = r
	return r, true
}

// Len returns the number of relationships.
func (b *Book) Len() int {
	return len(b.byKey)
}

// All returns every relationship sorted by key.
func (b *Book) All() []*Relationship {
	out := make([]*Relationship, 0, len(b.byKey))
	for _, r := range b.byKey {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Partner returns the agent id paired with id at a romantic stage, preferring the
// most advanced stage. Empty when id has no romantic partner.
func (b *Book) Partner(id string) string {
	var best *Relationship
	for _, r := range b.byKey {
		if r.AgentA != id && r.AgentB != id {
			continue
		}
		if !r.Stage.Romantic() {
			continue
		}
		if best == nil || r.Stage > best.Stage || (r.Stage == best.Stage && r.Key() < best.Key()) {
			best = r
		}
	}
	if best == nil {
		return ""
	}
	return best.Other(id)
}
