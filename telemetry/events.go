// Package telemetry tracks village activity in fixed windows and writes it out as CSV.
package telemetry

// EventType identifies a countable village event.
type EventType uint8

const (
	EventConversationStarted EventType = iota
	EventConversationCompleted
	EventConversationFailed
	EventStageChange
	EventBirth
	EventReaction
	EventDecree
	EventObjectSpawned
	EventLockExpired
	numEventTypes
)

var eventNames = [numEventTypes]string{
	"conversation_started",
	"conversation_completed",
	"conversation_failed",
	"stage_change",
	"birth",
	"reaction",
	"decree",
	"object_spawned",
	"lock_expired",
}

func (t EventType) String() string {
	if t < numEventTypes {
		return eventNames[t]
	}
	return "unknown"
}

// ChronicleRecord is one narrative line as written to chronicle.csv.
type ChronicleRecord struct {
	Tick int64  `csv:"tick"`
	Time string `csv:"time"`
	Kind string `csv:"kind"`
	Text string `csv:"text"`
}
