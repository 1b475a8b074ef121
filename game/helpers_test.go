package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pthm-cable/hamlet/components"
	"github.com/pthm-cable/hamlet/config"
	"github.com/pthm-cable/hamlet/gateway"
	"github.com/pthm-cable/hamlet/world"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// stubGateway returns canned replies and counts calls.
type stubGateway struct {
	mu sync.Mutex

	conv     gateway.Conversation
	convErr  error
	reaction string
	decree   []gateway.DecreeReaction

	converseCalls int
	reactCalls    int
	lastConverse  gateway.ConversationRequest
}

func (s *stubGateway) Converse(ctx context.Context, req gateway.ConversationRequest) (gateway.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.converseCalls++
	s.lastConverse = req
	return s.conv, s.convErr
}

func (s *stubGateway) React(ctx context.Context, req gateway.ReactionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactCalls++
	return s.reaction, nil
}

func (s *stubGateway) Decree(ctx context.Context, message string, agents []gateway.Profile) ([]gateway.DecreeReaction, error) {
	return s.decree, nil
}

func twoLines(topic string) gateway.Conversation {
	return gateway.Conversation{
		Messages: []gateway.Line{
			{Speaker: "Ann", Text: "Hello!"},
			{Speaker: "Bob", Text: "Hi there."},
		},
		Topic: topic,
	}
}

// testConfig returns the defaults with no founding villagers.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Population.Initial = 0
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, gw gateway.Gateway) *Game {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	g := NewGameWithOptions(Options{
		Config:     cfg,
		Gateway:    gw,
		Seed:       7,
		Dispatcher: SyncDispatcher,
		Clock:      func() time.Time { return t0 },
	})
	t.Cleanup(g.Close)
	return g
}

// place spawns a walking villager standing still at (x, y).
func place(g *Game, id, name string, x, y float64) {
	p := components.Persona{ID: id, Name: name, HomeID: "house_mira"}
	at := world.Point{X: x, Y: y}
	g.spawnAgent(p, at, 1, world.Destination{Point: at})
}

func mustAgent(t *testing.T, g *Game, id string) agent {
	t.Helper()
	a, ok := g.lookup(id)
	if !ok {
		t.Fatalf("agent %q not found", id)
	}
	return a
}

// talk runs one full conversation between a and b while the game is paused
// and returns the time after the pair has been released.
func talk(t *testing.T, g *Game, aID, bID string, now time.Time) time.Time {
	t.Helper()
	g.SetPaused(true)
	g.startConversation(mustAgent(t, g, aID), mustAgent(t, g, bID), now)
	g.Step(now)
	now = now.Add(time.Minute)
	g.Step(now)
	return now
}
