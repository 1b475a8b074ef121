package world

import (
	"time"

	"github.com/google/uuid"
)

// Object is a god-spawned prop. It lives until the objects are cleared.
type Object struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"created_at"`
}

// Pos returns the object position.
func (o Object) Pos() Point {
	return Point{X: o.X, Y: o.Y}
}

// Objects is the registry of live world objects, in spawn order.
type Objects struct {
	items []Object
}

// Spawn appends a new object at p.
func (o *Objects) Spawn(name, emoji string, p Point, now time.Time) Object {
	obj := Object{
		ID:        uuid.NewString(),
		Name:      name,
		Emoji:     emoji,
		X:         p.X,
		Y:         p.Y,
		CreatedAt: now,
	}
	o.items = append(o.items, obj)
	return obj
}

// Clear removes every object and returns what was removed.
func (o *Objects) Clear() []Object {
	removed := o.items
	o.items = nil
	return removed
}

// All returns the live objects. The slice must not be modified.
func (o *Objects) All() []Object {
	return o.items
}

// Len returns the number of live objects.
func (o *Objects) Len() int {
	return len(o.items)
}
