package geometry

import (
	"fitplan/catalog"
	"fitplan/design"
)

// FixtureRect resolves a fixture's rotation and footprint anchor into its
// axis-aligned physical bounding rectangle. This is the single source of
// truth for where a fixture is: drag, collision, alignment and selection
// bounds all go through here rather than re-deriving geometry.
//
// At rotation 0 the footprint length runs along x. Rotations of 90 and 270
// swap the extents. Anchors resolve as:
//   - center: (xFt, yFt) is the rectangle center
//   - front-left: (xFt, yFt) is the min corner
//   - back-left: (xFt, yFt) is the left end of the back (max-y) edge
func FixtureRect(f design.Fixture, item catalog.Item) Rect {
	length := item.Footprint.LengthFt
	if v, ok := f.LengthOverride(); ok && v > 0 {
		length = v
	}
	width := item.Footprint.WidthFt

	w, h := length, width
	switch design.NormalizeRotation(f.RotationDeg) {
	case 90, 270:
		w, h = width, length
	}

	switch item.Anchor {
	case catalog.AnchorCenter:
		return Rect{X: f.XFt - w/2, Y: f.YFt - h/2, Width: w, Height: h}
	case catalog.AnchorBackLeft:
		return Rect{X: f.XFt, Y: f.YFt - h, Width: w, Height: h}
	default: // front-left
		return Rect{X: f.XFt, Y: f.YFt, Width: w, Height: h}
	}
}

// AnchorOffset returns the constant vector from the fixture's bounding
// rectangle min corner to its stored anchor position, for the fixture's
// current rotation. Controllers use it to map a clamped rectangle origin back
// to an anchor position.
func AnchorOffset(f design.Fixture, item catalog.Item) (dx, dy float64) {
	r := FixtureRect(f, item)
	return f.XFt - r.X, f.YFt - r.Y
}

// ClampRectToShell limits a rectangle origin so the whole rectangle stays
// inside the shell. Rectangles larger than the shell pin to the min corner.
func ClampRectToShell(r Rect, shell design.Shell) Rect {
	r.X = Clamp(r.X, 0, shell.LengthFt-r.Width)
	r.Y = Clamp(r.Y, 0, shell.WidthFt-r.Height)
	return r
}
