package components

// Position represents an agent's world position.
type Position struct {
	X, Y float64
}

// Motion holds the straight-line walking target.
type Motion struct {
	TargetX, TargetY float64
	Speed            float64 `inspect:"label,fmt:%.2f"` // world units per tick
	Destination      string  `inspect:"label"`          // building id, empty for an ad-hoc point
}

// SetTarget points the agent at a new destination.
func (m *Motion) SetTarget(x, y float64, destination string) {
	m.TargetX = x
	m.TargetY = y
	m.Destination = destination
}
