package game

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/hamlet/social"
)

// logWorldState logs who is doing what and the closest pairs in the village.
func (g *Game) logWorldState() {
	var walking, talking int
	for _, a := range g.agents() {
		if a.behavior.Talking() {
			talking++
		} else {
			walking++
		}
	}

	slog.Info("village",
		"tick", g.tick,
		"walking", walking,
		"talking", talking,
		"objects", g.objects.Len(),
		"bubbles", len(g.bubbles),
		"scheduled", g.sched.Len(),
		"locks", g.locks.Len(),
		"outstanding", g.outstanding,
		"born", g.babies.Born(),
	)

	for _, r := range g.closestPairs(3) {
		slog.Info("pair",
			"key", r.Key(),
			"stage", r.Stage.String(),
			"meet_count", r.MeetCount,
			"last_topics", r.LastTopics,
		)
	}
}

// closestPairs returns up to n relationships at the most advanced stage,
// most meetings first.
func (g *Game) closestPairs(n int) []*social.Relationship {
	rels := g.book.All()
	sort.SliceStable(rels, func(i, j int) bool {
		if rels[i].Stage != rels[j].Stage {
			return rels[i].Stage > rels[j].Stage
		}
		return rels[i].MeetCount > rels[j].MeetCount
	})
	if len(rels) > n {
		rels = rels[:n]
	}
	return rels
}
