package telemetry

import "github.com/pthm-cable/hamlet/social"

// AgentTally is one villager's running totals, written to agents.csv at exit.
type AgentTally struct {
	AgentID       string       `csv:"agent"`
	Name          string       `csv:"name"`
	BornTick      int64        `csv:"born_tick"`
	Baby          bool         `csv:"baby"`
	Conversations int          `csv:"conversations"`
	Reactions     int          `csv:"reactions"`
	Children      int          `csv:"children"`
	ClosestStage  social.Stage `csv:"closest_stage"`
}

// TallyBook keeps one AgentTally per agent in registration order.
type TallyBook struct {
	tallies map[string]*AgentTally
	order   []string
}

// NewTallyBook creates an empty book.
func NewTallyBook() *TallyBook {
	return &TallyBook{tallies: make(map[string]*AgentTally)}
}

// Register starts a tally for a newly spawned or born agent.
// Registering an id twice keeps the first tally.
func (tb *TallyBook) Register(id, name string, tick int64, baby bool) {
	if _, ok := tb.tallies[id]; ok {
		return
	}
	tb.tallies[id] = &AgentTally{AgentID: id, Name: name, BornTick: tick, Baby: baby}
	tb.order = append(tb.order, id)
}

// Get returns the tally for id, or nil.
func (tb *TallyBook) Get(id string) *AgentTally {
	return tb.tallies[id]
}

// RecordConversation counts a completed conversation for id.
func (tb *TallyBook) RecordConversation(id string) {
	if t := tb.tallies[id]; t != nil {
		t.Conversations++
	}
}

// RecordReaction counts an object reaction for id.
func (tb *TallyBook) RecordReaction(id string) {
	if t := tb.tallies[id]; t != nil {
		t.Reactions++
	}
}

// RecordChild counts a baby for parent id.
func (tb *TallyBook) RecordChild(id string) {
	if t := tb.tallies[id]; t != nil {
		t.Children++
	}
}

// RecordStage raises id's closest stage to s if s is further along.
func (tb *TallyBook) RecordStage(id string, s social.Stage) {
	if t := tb.tallies[id]; t != nil && s > t.ClosestStage {
		t.ClosestStage = s
	}
}

// All returns copies of every tally in registration order.
func (tb *TallyBook) All() []AgentTally {
	out := make([]AgentTally, 0, len(tb.order))
	for _, id := range tb.order {
		out = append(out, *tb.tallies[id])
	}
	return out
}

// Count returns the number of tracked agents.
func (tb *TallyBook) Count() int {
	return len(tb.order)
}
