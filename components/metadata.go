package components

// State is the behavioral state of an agent.
type State uint8

const (
	StateWalking State = iota
	StateTalking
	StateIdle // declared for pausing; no transition reaches it yet
)

// String returns the display name for a State.
func (s State) String() string {
	names := StateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// MarshalText renders the state by name in JSON frames.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StateNames returns the display names for all states.
// The order matches the State constants.
func StateNames() []string {
	return []string{"walking", "talking", "idle"}
}

// Frozen reports whether agents in this state skip movement.
func (s State) Frozen() bool {
	switch s {
	case StateWalking:
		return false
	case StateTalking, StateIdle:
		return true
	}
	return true
}

// FieldDescriptor describes an agent field for the inspector panel.
type FieldDescriptor struct {
	ID     string // Unique identifier
	Label  string // Display name
	Format string // Printf format (e.g., "%.2f")
	Group  string // Logical grouping
}

// AgentFieldDescriptors returns metadata for the fields shown on a selected agent.
func AgentFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "name", Label: "Name", Format: "%s", Group: "identity"},
		{ID: "home", Label: "Home", Format: "%s", Group: "identity"},
		{ID: "state", Label: "State", Format: "%s", Group: "behavior"},
		{ID: "talking_to", Label: "Talking to", Format: "%s", Group: "behavior"},
		{ID: "destination", Label: "Heading to", Format: "%s", Group: "motion"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Group: "motion"},
	}
}
