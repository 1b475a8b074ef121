package world

import (
	"math/rand"
)

// MapConfig holds map dimensions and destination policy parameters.
type MapConfig struct {
	Width, Height  float64
	EdgeMargin     float64 // RandomPosition keeps this far from every edge
	InteriorMargin float64 // InsideBuilding insets rooms by this much
	HomeChance     float64
	PartnerChance  float64
}

// DefaultMapConfig returns the stock 1280x800 village parameters.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Width:          1280,
		Height:         800,
		EdgeMargin:     50,
		InteriorMargin: 15,
		HomeChance:     0.30,
		PartnerChance:  0.20,
	}
}

// Destination is a walking target, optionally inside a building.
type Destination struct {
	Point
	BuildingID string
}

// Map is the static village layout plus the rng used to sample it.
// Every simulation owns its own Map.
type Map struct {
	cfg       MapConfig
	buildings []Building
	byID      map[string]int
	rng       *rand.Rand
}

// NewMap builds a map over the given buildings.
func NewMap(cfg MapConfig, buildings []Building, rng *rand.Rand) *Map {
	m := &Map{
		cfg:       cfg,
		buildings: buildings,
		byID:      make(map[string]int, len(buildings)),
		rng:       rng,
	}
	for i, b := range buildings {
		m.byID[b.ID] = i
	}
	return m
}

// Config returns the map parameters.
func (m *Map) Config() MapConfig {
	return m.cfg
}

// Buildings returns the building catalog.
func (m *Map) Buildings() []Building {
	return m.buildings
}

// Building looks up a building by id.
func (m *Map) Building(id string) (Building, bool) {
	i, ok := m.byID[id]
	if !ok {
		return Building{}, false
	}
	return m.buildings[i], true
}

// BuildingAt returns the building whose main room or wing contains p.
func (m *Map) BuildingAt(p Point) (Building, bool) {
	for _, b := range m.buildings {
		if b.Contains(p) {
			return b, true
		}
	}
	return Building{}, false
}

// Clamp keeps p inside the map bounds.
func (m *Map) Clamp(p Point) Point {
	if m.InBounds(p) {
		return p
	}
	return Point{X: clamp(p.X, 0, m.cfg.Width), Y: clamp(p.Y, 0, m.cfg.Height)}
}

// InBounds reports whether p is inside the map.
func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.X <= m.cfg.Width && p.Y >= 0 && p.Y <= m.cfg.Height
}

// RandomPosition samples uniformly inside the map minus the edge margin.
func (m *Map) RandomPosition() Point {
	e := m.cfg.EdgeMargin
	return Point{
		X: e + m.rng.Float64()*(m.cfg.Width-2*e),
		Y: e + m.rng.Float64()*(m.cfg.Height-2*e),
	}
}

// InsideBuilding picks one room of b with equal probability and samples a point
// strictly inside it, inset by the interior margin.
func (m *Map) InsideBuilding(b Building) Point {
	rooms := b.Rooms()
	room := rooms[m.rng.Intn(len(rooms))]
	inner := room.Inset(m.cfg.InteriorMargin)
	if inner.W <= 0 || inner.H <= 0 {
		return room.Center()
	}
	// Float64 is in [0,1); nudge off the lower edge so the point is strictly inside
	u := nudge(m.rng.Float64())
	v := nudge(m.rng.Float64())
	return Point{X: inner.X + u*inner.W, Y: inner.Y + v*inner.H}
}

func nudge(f float64) float64 {
	if f == 0 {
		return 0.5
	}
	return f
}

// PickDestination chooses where an agent walks next, in priority order:
// home, then the partner's home, then any other building.
// The current destination is never repeated unless it is the only building.
func (m *Map) PickDestination(homeID, currentID, partnerHomeID string) Destination {
	if homeID != "" && homeID != currentID {
		if home, ok := m.Building(homeID); ok && m.rng.Float64() < m.cfg.HomeChance {
			return Destination{Point: m.InsideBuilding(home), BuildingID: home.ID}
		}
	}

	if partnerHomeID != "" && partnerHomeID != homeID && partnerHomeID != currentID {
		if home, ok := m.Building(partnerHomeID); ok && m.rng.Float64() < m.cfg.PartnerChance {
			return Destination{Point: m.InsideBuilding(home), BuildingID: home.ID}
		}
	}

	candidates := make([]int, 0, len(m.buildings))
	for i, b := range m.buildings {
		if b.ID != currentID {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		if len(m.buildings) == 0 {
			return Destination{Point: m.RandomPosition()}
		}
		// Single-building map: allow the repeat
		for i := range m.buildings {
			candidates = append(candidates, i)
		}
	}

	b := m.buildings[candidates[m.rng.Intn(len(candidates))]]
	return Destination{Point: m.InsideBuilding(b), BuildingID: b.ID}
}

// NewTarget picks a destination with no home, partner or current building.
func (m *Map) NewTarget() Destination {
	return m.PickDestination("", "", "")
}
