package editor

import (
	"fitplan/design"
	"fitplan/geometry"
)

// Zone drag and resize controllers. Both clamp to the shell and commit once
// at END. Resize constrains which scalar fields each handle may change and
// enforces a minimum zone size.

func (e *Editor) startZoneDrag(a StartZoneDrag) {
	if e.hasTransient() {
		return
	}
	z := e.design.Zone(a.ID)
	if z == nil {
		return
	}
	e.zoneDrag = &ZoneDrag{
		ID:      a.ID,
		Start:   a.At,
		Current: a.At,
		Origin:  design.Point{X: z.XFt, Y: z.YFt},
	}
}

func (e *Editor) updateZoneDrag(at design.Point) {
	if e.zoneDrag == nil {
		return
	}
	e.zoneDrag.Current = at
}

func (e *Editor) endZoneDrag(at design.Point) {
	d := e.zoneDrag
	if d == nil {
		return
	}
	e.zoneDrag = nil
	z := e.design.Zone(d.ID)
	if z == nil {
		return
	}
	x := geometry.Snap(d.Origin.X+(at.X-d.Start.X), e.snapIncrement)
	y := geometry.Snap(d.Origin.Y+(at.Y-d.Start.Y), e.snapIncrement)
	x = geometry.Clamp(x, 0, e.design.Shell.LengthFt-z.LengthFt)
	y = geometry.Clamp(y, 0, e.design.Shell.WidthFt-z.WidthFt)
	if x == z.XFt && y == z.YFt {
		return
	}
	e.commit("move zone", func(doc *design.Design) bool {
		target := doc.Zone(d.ID)
		target.XFt, target.YFt = x, y
		return true
	})
}

func (e *Editor) startZoneResize(a StartZoneResize) {
	if e.hasTransient() {
		return
	}
	z := e.design.Zone(a.ID)
	if z == nil || !validHandle(a.Handle) {
		return
	}
	e.zoneResize = &ZoneResize{
		ID:      a.ID,
		Handle:  a.Handle,
		Start:   a.At,
		Current: a.At,
		Origin:  *z,
	}
}

func (e *Editor) updateZoneResize(at design.Point) {
	if e.zoneResize == nil {
		return
	}
	e.zoneResize.Current = at
}

func (e *Editor) endZoneResize(at design.Point) {
	r := e.zoneResize
	if r == nil {
		return
	}
	e.zoneResize = nil
	z := e.design.Zone(r.ID)
	if z == nil {
		return
	}
	next := resizeZone(r.Origin, r.Handle, at.X-r.Start.X, at.Y-r.Start.Y, e.snapIncrement, e.design.Shell)
	if next == *z {
		return
	}
	e.commit("resize zone", func(doc *design.Design) bool {
		*doc.Zone(r.ID) = next
		return true
	})
}

// ZoneResizePreview returns the zone geometry the active resize would commit
// at the current pointer position. Nil when no resize is active.
func (e *Editor) ZoneResizePreview() *design.Zone {
	r := e.zoneResize
	if r == nil {
		return nil
	}
	next := resizeZone(r.Origin, r.Handle, r.Current.X-r.Start.X, r.Current.Y-r.Start.Y, e.snapIncrement, e.design.Shell)
	return &next
}

func validHandle(h Handle) bool {
	switch h {
	case HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW:
		return true
	}
	return false
}

// resizeZone applies a pointer delta to the zone edges named by the handle.
// West/north handles move the min corner, east/south handles the extent; the
// moving edge snaps to the grid and the zone never shrinks below the minimum
// size or escapes the shell.
func resizeZone(z design.Zone, h Handle, dx, dy float64, snapInc float64, shell design.Shell) design.Zone {
	minX, minY := z.XFt, z.YFt
	maxX, maxY := z.XFt+z.LengthFt, z.YFt+z.WidthFt

	moveW := h == HandleW || h == HandleNW || h == HandleSW
	moveE := h == HandleE || h == HandleNE || h == HandleSE
	moveN := h == HandleN || h == HandleNE || h == HandleNW
	moveS := h == HandleS || h == HandleSE || h == HandleSW

	if moveW {
		minX = geometry.Clamp(geometry.Snap(minX+dx, snapInc), 0, maxX-MinZoneSizeFt)
	}
	if moveE {
		maxX = geometry.Clamp(geometry.Snap(maxX+dx, snapInc), minX+MinZoneSizeFt, shell.LengthFt)
	}
	if moveN {
		minY = geometry.Clamp(geometry.Snap(minY+dy, snapInc), 0, maxY-MinZoneSizeFt)
	}
	if moveS {
		maxY = geometry.Clamp(geometry.Snap(maxY+dy, snapInc), minY+MinZoneSizeFt, shell.WidthFt)
	}

	z.XFt, z.YFt = minX, minY
	z.LengthFt, z.WidthFt = maxX-minX, maxY-minY
	return z
}
