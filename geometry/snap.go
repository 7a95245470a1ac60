package geometry

import (
	"math"

	"fitplan/design"
)

// Snap rounds v to the nearest multiple of increment. Exact ties round half
// away from zero (math.Round); the increment grid makes no other tie-break
// observable. A non-positive increment disables snapping.
func Snap(v, increment float64) float64 {
	if increment <= 0 {
		return v
	}
	return math.Round(v/increment) * increment
}

// SnapPoint snaps both coordinates of a point to the increment grid.
func SnapPoint(p design.Point, increment float64) design.Point {
	return design.Point{X: Snap(p.X, increment), Y: Snap(p.Y, increment)}
}
