package gateway

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limited throttles every call to the wrapped gateway through one token bucket.
type Limited struct {
	next    Gateway
	limiter *rate.Limiter
}

// NewLimited allows perSec calls per second with the given burst.
func NewLimited(next Gateway, perSec float64, burst int) *Limited {
	return &Limited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

// Converse waits for a token, then forwards the request.
func (l *Limited) Converse(ctx context.Context, req ConversationRequest) (Conversation, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return Conversation{}, fmt.Errorf("rate limit: %w", err)
	}
	return l.next.Converse(ctx, req)
}

// React waits for a token, then forwards the request.
func (l *Limited) React(ctx context.Context, req ReactionRequest) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	return l.next.React(ctx, req)
}

// Decree waits for a token, then forwards the request.
func (l *Limited) Decree(ctx context.Context, message string, agents []Profile) ([]DecreeReaction, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return l.next.Decree(ctx, message, agents)
}
