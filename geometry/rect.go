// Package geometry contains the pure spatial utilities behind the fitplan
// editor: snapping, fixture bounding rectangles, collision tests and
// alignment guides. Everything here is stateless; all values are in feet.
package geometry

import (
	"math"

	"fitplan/design"
)

// Rect is an axis-aligned rectangle in feet, defined by its min corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MaxX returns the rectangle's right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the rectangle's bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Center returns the rectangle's center point.
func (r Rect) Center() design.Point {
	return design.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains checks whether a point lies inside the rectangle.
func (r Rect) Contains(p design.Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Intersects reports whether two rectangles overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Intersection returns the overlap rectangle of r and o. The second return is
// false when the rectangles do not overlap with positive area.
func (r Rect) Intersection(o Rect) (Rect, bool) {
	x := math.Max(r.X, o.X)
	y := math.Max(r.Y, o.Y)
	maxX := math.Min(r.MaxX(), o.MaxX())
	maxY := math.Min(r.MaxY(), o.MaxY())
	if maxX <= x || maxY <= y {
		return Rect{}, false
	}
	return Rect{X: x, Y: y, Width: maxX - x, Height: maxY - y}, true
}

// Union returns the minimal rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: x, Y: y, Width: maxX - x, Height: maxY - y}
}

// RectBetween returns the rectangle spanned by two arbitrary corner points.
func RectBetween(a, b design.Point) Rect {
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	return Rect{X: x, Y: y, Width: math.Abs(a.X - b.X), Height: math.Abs(a.Y - b.Y)}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b design.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Clamp limits v to the range [lo, hi]. When hi < lo (the content is larger
// than the container) the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
