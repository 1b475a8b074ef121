package game

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// SimulatedClock returns a clock that starts at start and advances one tick
// duration per tick of *g, so a seed replays the same run however fast the
// host is. It reads start until *g is set.
func SimulatedClock(start time.Time, tickDuration time.Duration, g **Game) func() time.Time {
	return func() time.Time {
		if *g == nil {
			return start
		}
		return start.Add(time.Duration((*g).tick+1) * tickDuration)
	}
}

// RunHeadless calls Update until ctx is done or the tick counter reaches
// maxTicks (0 runs until ctx is done).
//
// With realtime set each Update waits for one tick duration of wall-clock
// time. Gateway latency, rate limiting and request timeouts are wall-clock
// durations, so runs against a real model must be paced for their replies to
// land before the lock safety net fires.
func (g *Game) RunHeadless(ctx context.Context, maxTicks int64, realtime bool) error {
	var pace *rate.Limiter
	if realtime && g.cfg.Derived.TickDuration > 0 {
		pace = rate.NewLimiter(rate.Every(g.cfg.Derived.TickDuration), 1)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pace != nil {
			if err := pace.Wait(ctx); err != nil {
				return err
			}
		}
		g.Update()
		if maxTicks > 0 && g.tick >= maxTicks {
			return nil
		}
	}
}
