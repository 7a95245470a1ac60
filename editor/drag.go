package editor

import (
	"fitplan/design"
	"fitplan/geometry"
)

// Fixture drag controller. START captures the pointer origin and the
// fixture's anchor; UPDATE tracks the pointer without snapping so the preview
// follows the hand exactly; END snaps, clamps to the shell and commits one
// history step. A gesture that never exceeds the tap threshold ends without a
// commit.

func (e *Editor) startDrag(a StartDrag) {
	if e.hasTransient() {
		return
	}
	f := e.design.Fixture(a.ID)
	if f == nil {
		return
	}
	if f.Locked {
		e.observe("reject", "fixture locked", map[string]any{"id": a.ID})
		return
	}
	if _, ok := e.catalog.Lookup(f.CatalogKey); !ok {
		return
	}
	e.drag = &FixtureDrag{
		ID:      a.ID,
		Start:   a.At,
		Current: a.At,
		Origin:  design.Point{X: f.XFt, Y: f.YFt},
	}
}

func (e *Editor) updateDrag(at design.Point) {
	if e.drag == nil {
		return
	}
	e.drag.Current = at
	if geometry.Distance(e.drag.Start, at) > dragCommitThresholdFt {
		e.drag.Moved = true
	}
}

func (e *Editor) endDrag(at design.Point) {
	d := e.drag
	if d == nil {
		return
	}
	e.drag = nil
	if geometry.Distance(d.Start, at) > dragCommitThresholdFt {
		d.Moved = true
	}
	if !d.Moved {
		return
	}
	f := e.design.Fixture(d.ID)
	if f == nil {
		return
	}
	anchor, ok := e.dropPosition(*f, d, at)
	if !ok || (anchor.X == f.XFt && anchor.Y == f.YFt) {
		return
	}
	e.commit("move fixture", func(doc *design.Design) bool {
		target := doc.Fixture(d.ID)
		target.XFt, target.YFt = anchor.X, anchor.Y
		return true
	})
}

// dropPosition computes the snapped, shell-clamped anchor for a drag release.
func (e *Editor) dropPosition(f design.Fixture, d *FixtureDrag, at design.Point) (design.Point, bool) {
	item, ok := e.catalog.Lookup(f.CatalogKey)
	if !ok {
		return design.Point{}, false
	}
	candidate := f
	candidate.XFt = geometry.Snap(d.Origin.X+(at.X-d.Start.X), e.snapIncrement)
	candidate.YFt = geometry.Snap(d.Origin.Y+(at.Y-d.Start.Y), e.snapIncrement)

	r := geometry.ClampRectToShell(geometry.FixtureRect(candidate, item), e.design.Shell)
	dx, dy := geometry.AnchorOffset(candidate, item)
	return design.Point{X: r.X + dx, Y: r.Y + dy}, true
}

// DragPreviewRect returns the unsnapped bounding rectangle of the dragged
// fixture at the current pointer position, for the renderer's live preview.
// Nil when no fixture drag is active.
func (e *Editor) DragPreviewRect() *geometry.Rect {
	d := e.drag
	if d == nil {
		return nil
	}
	f := e.design.Fixture(d.ID)
	if f == nil {
		return nil
	}
	item, ok := e.catalog.Lookup(f.CatalogKey)
	if !ok {
		return nil
	}
	candidate := *f
	candidate.XFt = d.Origin.X + (d.Current.X - d.Start.X)
	candidate.YFt = d.Origin.Y + (d.Current.Y - d.Start.Y)
	r := geometry.ClampRectToShell(geometry.FixtureRect(candidate, item), e.design.Shell)
	return &r
}
