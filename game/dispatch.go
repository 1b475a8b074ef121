package game

import (
	"context"
	"sync"
	"time"
)

// Dispatcher runs a gateway task off the tick goroutine.
type Dispatcher func(task func())

// GoDispatcher runs every task on its own goroutine.
func GoDispatcher(task func()) {
	go task()
}

// SyncDispatcher runs the task inline. Results still wait for the next Step.
func SyncDispatcher(task func()) {
	task()
}

// completion applies a finished request to the simulation on the tick goroutine.
type completion func(now time.Time)

// mailbox hands completions from dispatcher goroutines to the tick loop.
type mailbox struct {
	mu    sync.Mutex
	items []completion
}

func (m *mailbox) post(c completion) {
	m.mu.Lock()
	m.items = append(m.items, c)
	m.mu.Unlock()
}

func (m *mailbox) drain() []completion {
	m.mu.Lock()
	items := m.items
	m.items = nil
	m.mu.Unlock()
	return items
}

// dispatch runs request off the tick goroutine and posts the completion it
// returns to the mailbox. The request context ends after the gateway timeout
// or when the game is closed. The request counts as outstanding until its
// completion has been applied.
func (g *Game) dispatch(request func(ctx context.Context) completion) {
	g.outstanding++
	g.inflight.Add(1)
	g.dispatcher(func() {
		defer g.inflight.Done()
		ctx, cancel := g.requestContext()
		defer cancel()
		done := request(ctx)
		g.inbox.post(func(now time.Time) {
			g.outstanding--
			done(now)
		})
	})
}

// saturated reports whether gateway.max_in_flight requests are outstanding.
// Encounters and reactions are not started while it holds.
func (g *Game) saturated() bool {
	limit := g.cfg.Gateway.MaxInFlight
	return limit > 0 && g.outstanding >= limit
}

func (g *Game) requestContext() (context.Context, context.CancelFunc) {
	if timeout := g.cfg.Derived.GatewayTimeout; timeout > 0 {
		return context.WithTimeout(g.ctx, timeout)
	}
	return context.WithCancel(g.ctx)
}
