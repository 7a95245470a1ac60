package editor

import (
	"math"

	"fitplan/catalog"
	"fitplan/design"
	"fitplan/geometry"
)

// Input is the tool state machine's front end: it takes raw device pointer
// positions from whatever backend captured them (native events, a gesture
// wrapper, a terminal grid), runs them through the transform pipeline and
// dispatches the per-tool actions of the active interaction session.
//
// A down→move→up sequence is an exclusive session: once a transient starts it
// owns the pointer until END. Hosts must route all subsequent events for that
// pointer here (pointer capture) and call PointerLost if capture breaks.
type Input struct {
	ed      *Editor
	surface Surface

	// Pan sessions live here, not in the reducer: viewport changes are not
	// document edits and are never undoable.
	pan *panSession
}

type panSession struct {
	lastVX, lastVY float64
}

// Modifiers carries the keyboard modifiers active during a pointer event.
type Modifiers struct {
	Append bool // shift/ctrl: add to selection instead of replacing
}

// NewInput wires a pointer front end to an editor.
func NewInput(ed *Editor) *Input {
	return &Input{ed: ed}
}

// SetSurface records the measured surface geometry. Call on every resize.
func (in *Input) SetSurface(s Surface) { in.surface = s }

// Mapper returns the current device↔feet mapper, for hosts that render in
// device space.
func (in *Input) Mapper() Mapper {
	return Mapper{Surface: in.surface, Viewport: in.ed.Viewport()}
}

// hitToleranceFt converts a fixed device-pixel slop into feet at the current
// zoom, with a floor so hit targets stay usable when zoomed out.
func (in *Input) hitToleranceFt() float64 {
	const slopPx = 8.0
	m := in.Mapper()
	if !m.Surface.Measurable() {
		return 0.25
	}
	fit, _, _ := m.Surface.fit()
	ft := slopPx / (fit * m.Viewport.Scale * PixelsPerFoot)
	return math.Max(ft, 0.1)
}

// PointerDown starts an interaction session according to the active tool.
func (in *Input) PointerDown(px, py float64, mods Modifiers) {
	m := in.Mapper()
	pt, ok := m.DeviceToFeet(px, py)
	if !ok {
		return
	}
	switch in.ed.Tool() {
	case ToolSelect:
		in.selectDown(pt, mods)
	case ToolPan:
		vx, vy, ok := m.Surface.DeviceToViewbox(px, py)
		if !ok {
			return
		}
		in.pan = &panSession{lastVX: vx, lastVY: vy}
	case ToolWall:
		if in.ed.WallDraw() == nil {
			in.ed.Dispatch(StartWallDraw{At: pt})
		} else {
			// Second click commits (desktop two-click flow).
			in.ed.Dispatch(EndWallDraw{At: pt})
		}
	case ToolMeasure:
		in.ed.Dispatch(MeasureClick{At: pt})
	case ToolAnnotate:
		in.ed.Dispatch(AddAnnotation{At: pt})
	}
}

// PointerMove advances whatever session is active.
func (in *Input) PointerMove(px, py float64) {
	m := in.Mapper()
	if in.pan != nil {
		vx, vy, ok := m.Surface.DeviceToViewbox(px, py)
		if !ok {
			return
		}
		in.ed.Dispatch(PanViewport{DX: vx - in.pan.lastVX, DY: vy - in.pan.lastVY})
		in.pan.lastVX, in.pan.lastVY = vx, vy
		return
	}
	pt, ok := m.DeviceToFeet(px, py)
	if !ok {
		return
	}
	ed := in.ed
	switch {
	case ed.Drag() != nil:
		ed.Dispatch(UpdateDrag{At: pt})
	case ed.ZoneDrag() != nil:
		ed.Dispatch(UpdateZoneDrag{At: pt})
	case ed.ZoneResize() != nil:
		ed.Dispatch(UpdateZoneResize{At: pt})
	case ed.Marquee() != nil:
		ed.Dispatch(UpdateMarquee{At: pt})
	case ed.WallDraw() != nil:
		ed.Dispatch(UpdateWallDraw{At: pt})
	case ed.WallLengthDrag() != nil:
		ed.Dispatch(UpdateWallLengthDrag{At: pt})
	case ed.AnnotationDrag() != nil:
		ed.Dispatch(UpdateAnnotationDrag{At: pt})
	}
}

// PointerUp ends the active session.
func (in *Input) PointerUp(px, py float64) {
	if in.pan != nil {
		in.pan = nil
		return
	}
	m := in.Mapper()
	pt, ok := m.DeviceToFeet(px, py)
	if !ok {
		in.ed.Dispatch(PointerCancel{})
		return
	}
	ed := in.ed
	switch {
	case ed.Drag() != nil:
		ed.Dispatch(EndDrag{At: pt})
	case ed.ZoneDrag() != nil:
		ed.Dispatch(EndZoneDrag{At: pt})
	case ed.ZoneResize() != nil:
		ed.Dispatch(EndZoneResize{At: pt})
	case ed.Marquee() != nil:
		ed.Dispatch(EndMarquee{At: pt})
	case ed.WallDraw() != nil:
		// Release after a real drag commits the wall (touch flow); release
		// on the start point waits for the second click instead.
		if w := ed.WallDraw(); geometry.Distance(w.Start, pt) >= MinWallLengthFt {
			ed.Dispatch(EndWallDraw{At: pt})
		}
	case ed.WallLengthDrag() != nil:
		ed.Dispatch(EndWallLengthDrag{At: pt})
	case ed.AnnotationDrag() != nil:
		ed.Dispatch(EndAnnotationDrag{At: pt})
	}
}

// PointerLost handles broken capture: the session ends at its last known
// position instead of dangling.
func (in *Input) PointerLost() {
	in.pan = nil
	in.ed.Dispatch(PointerCancel{})
}

// Zoom applies a wheel or pinch zoom centered on the given device position.
func (in *Input) Zoom(px, py, factor float64) {
	vx, vy, ok := in.surface.DeviceToViewbox(px, py)
	if !ok {
		return
	}
	in.ed.Dispatch(ZoomViewport{At: design.Point{X: vx, Y: vy}, Factor: factor})
}

// selectDown resolves a pointer-down under the select tool, in hit priority
// order: rotation handle, wall endpoint, annotation points, fixtures, zone
// handles, zone bodies, then empty canvas (marquee).
func (in *Input) selectDown(pt design.Point, mods Modifiers) {
	ed := in.ed
	tol := in.hitToleranceFt()

	if id, ok := in.hitRotationHandle(pt, tol); ok {
		f := ed.Design().Fixture(id)
		ed.Dispatch(UpdateFixtureRotation{ID: id, RotationDeg: f.RotationDeg + 90})
		return
	}
	if id, ok := in.hitWallEndpoint(pt, tol); ok {
		ed.Dispatch(StartWallLengthDrag{ID: id, At: pt})
		return
	}
	if id, part, ok := in.hitAnnotation(pt, tol); ok {
		ed.Dispatch(SelectAnnotation{ID: id})
		ed.Dispatch(StartAnnotationDrag{ID: id, Part: part, At: pt})
		return
	}
	if id, ok := in.hitFixture(pt); ok {
		ed.Dispatch(SelectFixture{ID: id, Append: mods.Append})
		// Locked fixtures can be selected but never dragged; the reducer
		// rejects the START anyway, this just skips the attempt.
		if f := ed.Design().Fixture(id); f != nil && !f.Locked {
			ed.Dispatch(StartDrag{ID: id, At: pt})
		}
		return
	}
	if id, h, ok := in.hitZoneHandle(pt, tol); ok {
		ed.Dispatch(SelectZone{ID: id})
		ed.Dispatch(StartZoneResize{ID: id, Handle: h, At: pt})
		return
	}
	if id, ok := in.hitZone(pt); ok {
		ed.Dispatch(SelectZone{ID: id})
		ed.Dispatch(StartZoneDrag{ID: id, At: pt})
		return
	}
	if !mods.Append {
		ed.Dispatch(ClearSelection{})
	}
	ed.Dispatch(StartMarquee{At: pt})
}

// RotationHandleOffsetFt is how far above a fixture's rectangle its rotation
// handle floats.
const RotationHandleOffsetFt = 0.5

// RotationHandlePoint returns the rotation handle position for a fixture, or
// ok=false when the fixture or its catalog entry is missing.
func (e *Editor) RotationHandlePoint(id string) (design.Point, bool) {
	f := e.design.Fixture(id)
	if f == nil {
		return design.Point{}, false
	}
	item, ok := e.catalog.Lookup(f.CatalogKey)
	if !ok {
		return design.Point{}, false
	}
	r := geometry.FixtureRect(*f, item)
	return design.Point{X: r.X + r.Width/2, Y: r.Y - RotationHandleOffsetFt}, true
}

func (in *Input) hitRotationHandle(pt design.Point, tol float64) (string, bool) {
	id := in.ed.PrimaryID()
	if id == "" {
		return "", false
	}
	f := in.ed.Design().Fixture(id)
	if f == nil || f.Locked {
		return "", false
	}
	hp, ok := in.ed.RotationHandlePoint(id)
	if !ok {
		return "", false
	}
	if geometry.Distance(pt, hp) <= tol*2 {
		return id, true
	}
	return "", false
}

func (in *Input) hitWallEndpoint(pt design.Point, tol float64) (string, bool) {
	ed := in.ed
	for _, id := range ed.SelectedIDs() {
		f := ed.Design().Fixture(id)
		if f == nil || f.Locked {
			continue
		}
		item, ok := ed.catalog.Lookup(f.CatalogKey)
		if !ok || item.Kind != catalog.KindWall {
			continue
		}
		r := geometry.FixtureRect(*f, item)
		var ends [2]design.Point
		if wallHorizontal(*f) {
			ends[0] = design.Point{X: r.X, Y: r.Y + r.Height/2}
			ends[1] = design.Point{X: r.MaxX(), Y: r.Y + r.Height/2}
		} else {
			ends[0] = design.Point{X: r.X + r.Width/2, Y: r.Y}
			ends[1] = design.Point{X: r.X + r.Width/2, Y: r.MaxY()}
		}
		for _, end := range ends {
			if geometry.Distance(pt, end) <= tol*2 {
				return id, true
			}
		}
	}
	return "", false
}

func (in *Input) hitAnnotation(pt design.Point, tol float64) (string, AnnotationPart, bool) {
	for _, an := range in.ed.Design().Annotations {
		if geometry.Distance(pt, an.LabelFt) <= tol*2 {
			return an.ID, AnnotationLabel, true
		}
		if geometry.Distance(pt, an.AnchorFt) <= tol*2 {
			return an.ID, AnnotationAnchor, true
		}
	}
	return "", AnnotationAnchor, false
}

// hitFixture returns the topmost fixture under the point. Later fixtures in
// the document draw on top, so the scan runs back to front.
func (in *Input) hitFixture(pt design.Point) (string, bool) {
	fixtures := in.ed.Design().Fixtures
	for i := len(fixtures) - 1; i >= 0; i-- {
		item, ok := in.ed.catalog.Lookup(fixtures[i].CatalogKey)
		if !ok {
			continue
		}
		if geometry.FixtureRect(fixtures[i], item).Contains(pt) {
			return fixtures[i].ID, true
		}
	}
	return "", false
}

// ZoneHandlePoints returns the eight resize handle positions of a zone.
func ZoneHandlePoints(z design.Zone) map[Handle]design.Point {
	minX, minY := z.XFt, z.YFt
	maxX, maxY := z.XFt+z.LengthFt, z.YFt+z.WidthFt
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	return map[Handle]design.Point{
		HandleNW: {X: minX, Y: minY},
		HandleN:  {X: midX, Y: minY},
		HandleNE: {X: maxX, Y: minY},
		HandleE:  {X: maxX, Y: midY},
		HandleSE: {X: maxX, Y: maxY},
		HandleS:  {X: midX, Y: maxY},
		HandleSW: {X: minX, Y: maxY},
		HandleW:  {X: minX, Y: midY},
	}
}

// hitZoneHandle only tests the selected zone; handles are invisible (and
// inert) on unselected zones.
func (in *Input) hitZoneHandle(pt design.Point, tol float64) (string, Handle, bool) {
	id := in.ed.SelectedZoneID()
	if id == "" {
		return "", "", false
	}
	z := in.ed.Design().Zone(id)
	if z == nil {
		return "", "", false
	}
	for h, hp := range ZoneHandlePoints(*z) {
		if geometry.Distance(pt, hp) <= tol*2 {
			return id, h, true
		}
	}
	return "", "", false
}

func (in *Input) hitZone(pt design.Point) (string, bool) {
	zones := in.ed.Design().Zones
	for i := len(zones) - 1; i >= 0; i-- {
		z := zones[i]
		r := geometry.Rect{X: z.XFt, Y: z.YFt, Width: z.LengthFt, Height: z.WidthFt}
		if r.Contains(pt) {
			return z.ID, true
		}
	}
	return "", false
}
