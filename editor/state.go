package editor

import (
	"fitplan/catalog"
	"fitplan/design"
	"fitplan/geometry"
)

// dragCommitThresholdFt is how far the pointer must travel, in feet, before a
// fixture drag counts as movement rather than a tap. Taps end without a
// commit so that selecting on an imprecise pointer never nudges the fixture.
const dragCommitThresholdFt = 0.05

// MinWallLengthFt is the shortest wall the wall tool will commit; shorter
// gestures are discarded on release.
const MinWallLengthFt = 0.5

// MinZoneSizeFt is the floor for zone resize.
const MinZoneSizeFt = 1.0

// AnnotationLabelOffset is the fixed vector from a new annotation's anchor to
// its label.
var AnnotationLabelOffset = design.Point{X: 1.5, Y: -1}

// Handle names the eight zone-resize handles.
type Handle string

const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

// AnnotationPart selects which point of an annotation a drag moves.
type AnnotationPart int

const (
	AnnotationAnchor AnnotationPart = iota
	AnnotationLabel
)

// FixtureDrag is the transient state of an in-progress fixture move.
type FixtureDrag struct {
	ID      string       // dragged fixture
	Start   design.Point // pointer position at START, feet
	Current design.Point // latest pointer position, feet
	Origin  design.Point // fixture anchor at START
	Moved   bool         // pointer exceeded the tap threshold
}

// ZoneDrag is the transient state of an in-progress zone move.
type ZoneDrag struct {
	ID      string
	Start   design.Point
	Current design.Point
	Origin  design.Point // zone min corner at START
}

// ZoneResize is the transient state of an in-progress zone resize.
type ZoneResize struct {
	ID      string
	Handle  Handle
	Start   design.Point
	Current design.Point
	Origin  design.Zone // zone geometry at START
}

// Marquee is the transient state of a rubber-band selection.
type Marquee struct {
	Origin  design.Point
	Current design.Point
}

// WallDraw is the transient state of the wall tool between its first point
// and release.
type WallDraw struct {
	Start   design.Point
	Current design.Point
}

// WallLengthDrag adjusts one endpoint of a wall fixture.
type WallLengthDrag struct {
	ID      string
	FarEnd  bool // true when dragging the endpoint away from the anchor
	Start   design.Point
	Current design.Point
	Origin  design.Fixture // wall as it was at START
}

// AnnotationDrag moves an annotation's anchor or label point.
type AnnotationDrag struct {
	ID      string
	Part    AnnotationPart
	Start   design.Point
	Current design.Point
	Origin  design.Point // the dragged point at START
}

// Editor owns the document and all transient editing state. All mutation goes
// through Dispatch; collaborators read state through the accessor methods.
// It is not safe for concurrent use; call it from a single event loop.
type Editor struct {
	design  *design.Design
	catalog catalog.Lookup

	tool          Tool
	viewport      Viewport
	snapIncrement float64
	history       *History

	selectedIDs          []string
	primaryID            string
	selectedZoneID       string
	selectedAnnotationID string

	// At most one of these is non-nil at any time.
	drag           *FixtureDrag
	zoneDrag       *ZoneDrag
	zoneResize     *ZoneResize
	marquee        *Marquee
	wallDraw       *WallDraw
	wallLengthDrag *WallLengthDrag
	annotationDrag *AnnotationDrag

	// Measure overlay: at most two points, never persisted, never undoable.
	measure []design.Point

	observer Observer
}

// Options configures a new Editor.
type Options struct {
	SnapIncrement float64 // feet; <= 0 falls back to 0.25
	HistoryLimit  int
	Observer      Observer
}

// New creates an editor around an existing document. The document is owned by
// the editor from here on; callers keep no mutable reference.
func New(doc *design.Design, cat catalog.Lookup, opts Options) *Editor {
	if doc == nil {
		doc = &design.Design{Shell: design.Shell{LengthFt: 20, WidthFt: 8, HeightFt: 8.5}}
	}
	snap := opts.SnapIncrement
	if snap <= 0 {
		snap = 0.25
	}
	return &Editor{
		design:        doc,
		catalog:       cat,
		tool:          ToolSelect,
		viewport:      DefaultViewport(),
		snapIncrement: snap,
		history:       NewHistory(opts.HistoryLimit),
		observer:      opts.Observer,
	}
}

// Design returns the current document. Callers must treat it as read-only;
// all mutation goes through Dispatch.
func (e *Editor) Design() *design.Design { return e.design }

// Snapshot returns an independent deep copy of the document, for persistence.
func (e *Editor) Snapshot() *design.Design { return e.design.Clone() }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Viewport returns the current pan/zoom transform.
func (e *Editor) Viewport() Viewport { return e.viewport }

// SnapIncrement returns the grid increment in feet.
func (e *Editor) SnapIncrement() float64 { return e.snapIncrement }

// SelectedIDs returns the selected fixture ids, pruned of fixtures that no
// longer exist.
func (e *Editor) SelectedIDs() []string {
	e.pruneSelection()
	out := make([]string, len(e.selectedIDs))
	copy(out, e.selectedIDs)
	return out
}

// PrimaryID returns the primary selected fixture id, or "".
func (e *Editor) PrimaryID() string {
	e.pruneSelection()
	return e.primaryID
}

// SelectedZoneID returns the selected zone id, or "".
func (e *Editor) SelectedZoneID() string {
	if e.selectedZoneID != "" && e.design.Zone(e.selectedZoneID) == nil {
		e.selectedZoneID = ""
	}
	return e.selectedZoneID
}

// SelectedAnnotationID returns the selected annotation id, or "".
func (e *Editor) SelectedAnnotationID() string {
	if e.selectedAnnotationID != "" && e.design.Annotation(e.selectedAnnotationID) == nil {
		e.selectedAnnotationID = ""
	}
	return e.selectedAnnotationID
}

// CanUndo reports whether undo is available.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether redo is available.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// HistoryDepths returns the undo/redo stack lengths.
func (e *Editor) HistoryDepths() (past, future int) { return e.history.Depths() }

// Transient accessors return copies so renderers can paint previews without
// aliasing reducer-owned state.

func (e *Editor) Drag() *FixtureDrag {
	if e.drag == nil {
		return nil
	}
	d := *e.drag
	return &d
}

func (e *Editor) ZoneDrag() *ZoneDrag {
	if e.zoneDrag == nil {
		return nil
	}
	d := *e.zoneDrag
	return &d
}

func (e *Editor) ZoneResize() *ZoneResize {
	if e.zoneResize == nil {
		return nil
	}
	d := *e.zoneResize
	return &d
}

func (e *Editor) Marquee() *Marquee {
	if e.marquee == nil {
		return nil
	}
	d := *e.marquee
	return &d
}

func (e *Editor) WallDraw() *WallDraw {
	if e.wallDraw == nil {
		return nil
	}
	d := *e.wallDraw
	return &d
}

func (e *Editor) WallLengthDrag() *WallLengthDrag {
	if e.wallLengthDrag == nil {
		return nil
	}
	d := *e.wallLengthDrag
	return &d
}

func (e *Editor) AnnotationDrag() *AnnotationDrag {
	if e.annotationDrag == nil {
		return nil
	}
	d := *e.annotationDrag
	return &d
}

// MeasurePoints returns the measure overlay points (0, 1 or 2).
func (e *Editor) MeasurePoints() []design.Point {
	out := make([]design.Point, len(e.measure))
	copy(out, e.measure)
	return out
}

// SelectionBounds returns the bounding box of the selected fixtures, or nil.
func (e *Editor) SelectionBounds() *geometry.Rect {
	e.pruneSelection()
	return geometry.SelectionBounds(e.design.Fixtures, e.selectedIDs, e.catalog)
}

// AlignmentGuides returns guides for the current single selection; nil for
// empty or multi selections.
func (e *Editor) AlignmentGuides() []geometry.Guide {
	e.pruneSelection()
	if len(e.selectedIDs) != 1 {
		return nil
	}
	return geometry.AlignmentGuides(e.design.Fixtures, e.selectedIDs[0], e.catalog)
}

// FixtureRect resolves a fixture's footprint rectangle through the editor's
// catalog, or ok=false when no catalog entry matches.
func (e *Editor) FixtureRect(f design.Fixture) (geometry.Rect, bool) {
	item, ok := e.catalog.Lookup(f.CatalogKey)
	if !ok {
		return geometry.Rect{}, false
	}
	return geometry.FixtureRect(f, item), true
}

// Collisions returns the current fixture overlap rectangles.
func (e *Editor) Collisions() []geometry.Overlap {
	return geometry.Collisions(e.design.Fixtures, e.catalog)
}

// hasTransient reports whether any exclusive interaction is active.
func (e *Editor) hasTransient() bool {
	return e.drag != nil || e.zoneDrag != nil || e.zoneResize != nil ||
		e.marquee != nil || e.wallDraw != nil || e.wallLengthDrag != nil ||
		e.annotationDrag != nil
}

// cancelTransient aborts any in-flight interaction without committing.
func (e *Editor) cancelTransient() {
	e.drag = nil
	e.zoneDrag = nil
	e.zoneResize = nil
	e.marquee = nil
	e.wallDraw = nil
	e.wallLengthDrag = nil
	e.annotationDrag = nil
}

// pruneSelection drops selection references to fixtures that no longer exist.
func (e *Editor) pruneSelection() {
	if len(e.selectedIDs) == 0 && e.primaryID == "" {
		return
	}
	kept := e.selectedIDs[:0]
	for _, id := range e.selectedIDs {
		if e.design.Fixture(id) != nil {
			kept = append(kept, id)
		}
	}
	e.selectedIDs = kept
	if e.primaryID != "" && e.design.Fixture(e.primaryID) == nil {
		e.primaryID = ""
		if len(e.selectedIDs) > 0 {
			e.primaryID = e.selectedIDs[len(e.selectedIDs)-1]
		}
	}
}

func (e *Editor) observe(kind, msg string, data map[string]any) {
	if e.observer != nil {
		e.observer.OnEvent(kind, msg, data)
	}
}
