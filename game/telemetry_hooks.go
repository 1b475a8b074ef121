package game

import (
	"log/slog"

	"github.com/pthm-cable/hamlet/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logWorldState()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sample observes the village at the end of a window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		Objects:       g.objects.Len(),
		PendingLocks:  g.locks.Len(),
		Relationships: g.book.Len(),
	}

	query := g.agentFilter.Query()
	for query.Next() {
		persona, _, _, behavior := query.Get()
		s.Agents++
		if persona.Baby {
			s.Babies++
		}
		if behavior.Talking() {
			s.Talking++
		}
	}

	rels := g.book.All()
	s.MeetCounts = make([]float64, 0, len(rels))
	for _, r := range rels {
		s.MeetCounts = append(s.MeetCounts, float64(r.MeetCount))
		if int(r.Stage) < len(s.StageCounts) {
			s.StageCounts[r.Stage]++
		}
	}
	return s
}
