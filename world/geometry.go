// Package world holds the static map: geometry helpers, the building catalog,
// the destination picker and the god-spawned world objects.
package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in world units.
type Point = r2.Vec

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return r2.Scale(0.5, r2.Add(a, b))
}

// FacePair places two points offset units either side of their midpoint,
// along the line that connects them. The first result is on a's side.
func FacePair(a, b Point, offset float64) (Point, Point) {
	mid := Midpoint(a, b)
	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	d := Point{X: math.Cos(angle) * offset, Y: math.Sin(angle) * offset}
	return r2.Sub(mid, d), r2.Add(mid, d)
}

// Step moves from towards to by at most speed units.
// It reports whether to was already within arrive units.
func Step(from, to Point, speed, arrive float64) (Point, bool) {
	delta := r2.Sub(to, from)
	dist := r2.Norm(delta)
	if dist < arrive {
		return from, true
	}
	if speed >= dist {
		return to, false
	}
	return r2.Add(from, r2.Scale(speed/dist, delta)), false
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ContainsStrict reports whether p lies inside r, edges excluded.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Inset shrinks r by m on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X + m, Y: r.Y + m, W: r.W - 2*m, H: r.H - 2*m}
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
