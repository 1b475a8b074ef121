package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Village state at window end
	Agents        int `csv:"agents"`
	Babies        int `csv:"babies"`
	Talking       int `csv:"talking"`
	Objects       int `csv:"objects"`
	PendingLocks  int `csv:"pending_locks"`
	Relationships int `csv:"relationships"`

	// Events during window
	ConversationsStarted   int `csv:"conversations_started"`
	ConversationsCompleted int `csv:"conversations_completed"`
	ConversationsFailed    int `csv:"conversations_failed"`
	StageChanges           int `csv:"stage_changes"`
	Births                 int `csv:"births"`
	Reactions              int `csv:"reactions"`
	Decrees                int `csv:"decrees"`
	ObjectsSpawned         int `csv:"objects_spawned"`
	LocksExpired           int `csv:"locks_expired"`

	// Meet count distribution over all relationships
	MeetMean float64 `csv:"meet_mean"`
	MeetP50  float64 `csv:"meet_p50"`
	MeetMax  float64 `csv:"meet_max"`

	// Stage histogram
	Strangers     int `csv:"strangers"`
	Acquaintances int `csv:"acquaintances"`
	Friends       int `csv:"friends"`
	Lovers        int `csv:"lovers"`
	Married       int `csv:"married"`
	Parents       int `csv:"parents"`
}

// SummarizeMeetCounts returns the mean, median and maximum of values.
// All three are zero for an empty slice.
func SummarizeMeetCounts(values []float64) (mean, p50, maxVal float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	maxVal = floats.Max(sorted)
	return mean, p50, maxVal
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("agents", s.Agents),
		slog.Int("babies", s.Babies),
		slog.Int("talking", s.Talking),
		slog.Int("objects", s.Objects),
		slog.Int("pending_locks", s.PendingLocks),
		slog.Int("relationships", s.Relationships),
		slog.Int("conversations_started", s.ConversationsStarted),
		slog.Int("conversations_completed", s.ConversationsCompleted),
		slog.Int("conversations_failed", s.ConversationsFailed),
		slog.Int("stage_changes", s.StageChanges),
		slog.Int("births", s.Births),
		slog.Int("reactions", s.Reactions),
		slog.Int("decrees", s.Decrees),
		slog.Int("locks_expired", s.LocksExpired),
		slog.Float64("meet_mean", s.MeetMean),
		slog.Float64("meet_max", s.MeetMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"agents", s.Agents,
		"talking", s.Talking,
		"relationships", s.Relationships,
		"conversations", s.ConversationsCompleted,
		"failed", s.ConversationsFailed,
		"stage_changes", s.StageChanges,
		"births", s.Births,
		"reactions", s.Reactions,
		"meet_mean", s.MeetMean,
		"meet_p50", s.MeetP50,
		"meet_max", s.MeetMax,
		"friends", s.Friends,
		"lovers", s.Lovers,
		"married", s.Married,
		"parents", s.Parents,
	)
}
