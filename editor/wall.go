package editor

import (
	"math"

	"fitplan/catalog"
	"fitplan/design"
	"fitplan/geometry"
)

// Wall tool and wall length controllers. Walls are ordinary fixtures under
// the wall catalog key: axis-aligned, front-left anchored, with the drawn
// length stored as a length-override property.

func (e *Editor) startWallDraw(at design.Point) {
	if e.hasTransient() {
		return
	}
	p := geometry.SnapPoint(at, e.snapIncrement)
	e.wallDraw = &WallDraw{Start: p, Current: p}
}

func (e *Editor) updateWallDraw(at design.Point) {
	if e.wallDraw == nil {
		return
	}
	e.wallDraw.Current = at
}

func (e *Editor) endWallDraw(at design.Point) {
	w := e.wallDraw
	if w == nil {
		return
	}
	e.wallDraw = nil

	anchor, rotation, length := wallSegment(w.Start, at, e.snapIncrement)
	if length < MinWallLengthFt {
		// Too short to be a wall; the gesture is discarded.
		return
	}
	id := design.NewID()
	e.commit("draw wall", func(d *design.Design) bool {
		f := design.Fixture{
			ID:          id,
			CatalogKey:  catalog.WallKey,
			XFt:         anchor.X,
			YFt:         anchor.Y,
			RotationDeg: rotation,
			Properties:  map[string]any{design.LengthOverrideProperty: length},
		}
		if item, ok := e.catalog.Lookup(catalog.WallKey); ok {
			r := geometry.ClampRectToShell(geometry.FixtureRect(f, item), d.Shell)
			dx, dy := geometry.AnchorOffset(f, item)
			f.XFt, f.YFt = r.X+dx, r.Y+dy
		}
		d.Fixtures = append(d.Fixtures, f)
		return true
	})
	e.selectedIDs = []string{id}
	e.primaryID = id
	e.setTool(ToolSelect)
}

// wallSegment collapses a freehand gesture onto the dominant axis and snaps
// both the anchor and the length to the grid.
func wallSegment(start, end design.Point, snapInc float64) (anchor design.Point, rotation int, length float64) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	if math.Abs(dx) >= math.Abs(dy) {
		length = geometry.Snap(math.Abs(dx), snapInc)
		anchor = design.Point{X: geometry.Snap(math.Min(start.X, end.X), snapInc), Y: geometry.Snap(start.Y, snapInc)}
		return anchor, 0, length
	}
	length = geometry.Snap(math.Abs(dy), snapInc)
	anchor = design.Point{X: geometry.Snap(start.X, snapInc), Y: geometry.Snap(math.Min(start.Y, end.Y), snapInc)}
	return anchor, 90, length
}

func (e *Editor) startWallLengthDrag(a StartWallLengthDrag) {
	if e.hasTransient() {
		return
	}
	f := e.design.Fixture(a.ID)
	if f == nil || f.Locked {
		return
	}
	item, ok := e.catalog.Lookup(f.CatalogKey)
	if !ok || item.Kind != catalog.KindWall {
		return
	}
	r := geometry.FixtureRect(*f, item)
	// Grab the endpoint nearer the pointer.
	var far bool
	if wallHorizontal(*f) {
		far = math.Abs(a.At.X-r.MaxX()) < math.Abs(a.At.X-r.X)
	} else {
		far = math.Abs(a.At.Y-r.MaxY()) < math.Abs(a.At.Y-r.Y)
	}
	e.wallLengthDrag = &WallLengthDrag{
		ID:      a.ID,
		FarEnd:  far,
		Start:   a.At,
		Current: a.At,
		Origin:  *f,
	}
}

func (e *Editor) updateWallLengthDrag(at design.Point) {
	if e.wallLengthDrag == nil {
		return
	}
	e.wallLengthDrag.Current = at
}

func (e *Editor) endWallLengthDrag(at design.Point) {
	d := e.wallLengthDrag
	if d == nil {
		return
	}
	e.wallLengthDrag = nil
	f := e.design.Fixture(d.ID)
	if f == nil {
		return
	}
	item, ok := e.catalog.Lookup(f.CatalogKey)
	if !ok {
		return
	}
	anchor, length := adjustWallEndpoint(d.Origin, item, d.FarEnd, at, e.snapIncrement)
	cur, _ := f.LengthOverride()
	if anchor.X == f.XFt && anchor.Y == f.YFt && length == cur {
		return
	}
	e.commit("resize wall", func(doc *design.Design) bool {
		target := doc.Fixture(d.ID)
		target.XFt, target.YFt = anchor.X, anchor.Y
		if target.Properties == nil {
			target.Properties = make(map[string]any, 1)
		}
		target.Properties[design.LengthOverrideProperty] = length
		return true
	})
}

// adjustWallEndpoint recomputes the wall anchor and length for a dragged
// endpoint. A drag that would invert the segment clamps at the minimum wall
// length instead.
func adjustWallEndpoint(origin design.Fixture, item catalog.Item, farEnd bool, at design.Point, snapInc float64) (design.Point, float64) {
	r := geometry.FixtureRect(origin, item)
	horizontal := wallHorizontal(origin)

	lo, hi := r.X, r.MaxX()
	pointer := at.X
	if !horizontal {
		lo, hi = r.Y, r.MaxY()
		pointer = at.Y
	}
	pointer = geometry.Snap(pointer, snapInc)

	if farEnd {
		hi = math.Max(pointer, lo+MinWallLengthFt)
	} else {
		lo = math.Min(pointer, hi-MinWallLengthFt)
	}
	length := hi - lo

	// Walls are front-left anchored, so the anchor is the new min corner.
	if horizontal {
		return design.Point{X: lo, Y: origin.YFt}, length
	}
	return design.Point{X: origin.XFt, Y: lo}, length
}

func wallHorizontal(f design.Fixture) bool {
	rot := design.NormalizeRotation(f.RotationDeg)
	return rot == 0 || rot == 180
}
