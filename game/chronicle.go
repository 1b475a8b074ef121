package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/hamlet/telemetry"
)

// ChronicleKind classifies chronicle entries.
type ChronicleKind string

const (
	KindMeeting ChronicleKind = "meeting"
	KindStage   ChronicleKind = "stage"
	KindBirth   ChronicleKind = "birth"
	KindDecree  ChronicleKind = "decree"
	KindObject  ChronicleKind = "object"
)

// ChronicleEntry is one line of village history.
type ChronicleEntry struct {
	Tick int64         `json:"tick"`
	Time time.Time     `json:"time"`
	Kind ChronicleKind `json:"kind"`
	Text string        `json:"text"`
}

// Record converts the entry for chronicle.csv.
func (e ChronicleEntry) Record() telemetry.ChronicleRecord {
	return telemetry.ChronicleRecord{
		Tick: e.Tick,
		Time: e.Time.UTC().Format(time.RFC3339),
		Kind: string(e.Kind),
		Text: e.Text,
	}
}

// Chronicle keeps the most recent entries of village history.
type Chronicle struct {
	size    int
	entries []ChronicleEntry
	onAdd   []func(ChronicleEntry)
}

// NewChronicle keeps at most size entries. Size <= 0 means 50.
func NewChronicle(size int) *Chronicle {
	if size <= 0 {
		size = 50
	}
	return &Chronicle{size: size}
}

// OnAdd registers fn to see every entry as it is added.
func (c *Chronicle) OnAdd(fn func(ChronicleEntry)) {
	c.onAdd = append(c.onAdd, fn)
}

// Add appends an entry, dropping the oldest past the size limit, and logs it.
func (c *Chronicle) Add(tick int64, at time.Time, kind ChronicleKind, text string) {
	e := ChronicleEntry{Tick: tick, Time: at, Kind: kind, Text: text}
	c.entries = append(c.entries, e)
	if over := len(c.entries) - c.size; over > 0 {
		c.entries = append(c.entries[:0], c.entries[over:]...)
	}
	slog.Info("chronicle", "tick", tick, "kind", string(kind), "text", text)
	for _, fn := range c.onAdd {
		fn(e)
	}
}

// Tail returns up to n of the newest entries, oldest first.
func (c *Chronicle) Tail(n int) []ChronicleEntry {
	if n > len(c.entries) || n < 0 {
		n = len(c.entries)
	}
	out := make([]ChronicleEntry, n)
	copy(out, c.entries[len(c.entries)-n:])
	return out
}

// Len returns the number of kept entries.
func (c *Chronicle) Len() int {
	return len(c.entries)
}
