// Package social models relationships between villagers: the order-independent
// pair key, the stage state machine and the conversation classifier.
package social

import (
	"fmt"
	"strings"
)

// Stage is the closeness tier of a pair. Stages only move forward.
type Stage uint8

const (
	Stranger Stage = iota
	Acquaintance
	Friend
	Lover
	Married
	Parent
)

var stageNames = []string{"stranger", "acquaintance", "friend", "lover", "married", "parent"}

// String returns the lower-case stage name.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// MarshalText renders the stage by name in JSON frames.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStage converts a stage name back into a Stage.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if strings.EqualFold(n, name) {
			return Stage(i), nil
		}
	}
	return Stranger, fmt.Errorf("unknown stage %q", name)
}

// Romantic reports whether the pair is lover, married or parent.
func (s Stage) Romantic() bool {
	return s >= Lover
}

// Celebration returns the bubble shown on both partners when the pair reaches s.
// Non-romantic stages have no celebration.
func (s Stage) Celebration() string {
	switch s {
	case Lover:
		return "💕"
	case Married:
		return "💍"
	case Parent:
		return "👶"
	}
	return ""
}

// Thresholds holds the minimum cumulative meet count for each forward edge.
type Thresholds struct {
	Acquaintance int
	Friend       int
	Lover        int
	Married      int
	Parent       int
}

// DefaultThresholds returns the stock progression: 2, 5, 10, 15, 20 meetings.
func DefaultThresholds() Thresholds {
	return Thresholds{Acquaintance: 2, Friend: 5, Lover: 10, Married: 15, Parent: 20}
}

// NextStage applies at most one forward edge. Only the highest threshold band
// that meetCount reaches is considered, and its edge fires only from the stage
// directly below its target. A stranger pair that has somehow met 100 times is
// still a stranger: nothing leaves stranger in the parent band.
func (th Thresholds) NextStage(meetCount int, current Stage) Stage {
	for _, e := range th.edges() {
		if meetCount < e.min {
			continue
		}
		if current == e.from {
			return e.to
		}
		return current
	}
	return current
}

type edge struct {
	min      int
	from, to Stage
}

// edges lists the transitions highest threshold first.
func (th Thresholds) edges() [5]edge {
	return [5]edge{
		{th.Parent, Married, Parent},
		{th.Married, Lover, Married},
		{th.Lover, Friend, Lover},
		{th.Friend, Acquaintance, Friend},
		{th.Acquaintance, Stranger, Acquaintance},
	}
}

// NextStage applies the default thresholds.
func NextStage(meetCount int, current Stage) Stage {
	return DefaultThresholds().NextStage(meetCount, current)
}

// ConversationType is the framing requested from the gateway.
type ConversationType string

const (
	Greeting  ConversationType = "greeting"
	SmallTalk ConversationType = "smalltalk"
	Deep      ConversationType = "deep"
)

// ConversationTypeFor classifies a pair by how often it has met.
func ConversationTypeFor(meetCount int) ConversationType {
	switch {
	case meetCount <= 0:
		return Greeting
	case meetCount <= 2:
		return SmallTalk
	default:
		return Deep
	}
}
