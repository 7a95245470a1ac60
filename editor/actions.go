package editor

import "fitplan/design"

// Action is the closed set of inputs the editor accepts. Dispatch is the sole
// mutation surface of the document; every concrete action below is a record
// of user intent, validated against current state before anything changes.
type Action interface {
	isAction()
}

// Document edits. These commit history.

type AddFixture struct {
	CatalogKey string
	At         design.Point // anchor position, feet
	Zone       string       // optional zone id
}

type RemoveFixture struct{ ID string }

// RemoveSelection deletes the selected fixtures, or failing that the selected
// zone or annotation.
type RemoveSelection struct{}

type UpdateFixtureRotation struct {
	ID          string
	RotationDeg int
}

type UpdateFixtureProperty struct {
	ID    string
	Key   string
	Value any
}

type SetFixtureLocked struct {
	ID     string
	Locked bool
}

type AssignZone struct {
	FixtureID string
	ZoneID    string // "" clears the association
}

type AddZone struct {
	Name string
	Rect design.Zone // id ignored; geometry and name taken from here if Name == ""
}

type RemoveZone struct{ ID string }

type RenameZone struct {
	ID   string
	Name string
}

type AddAnnotation struct {
	At   design.Point // anchor, snapped by the reducer
	Text string
}

type UpdateAnnotationText struct {
	ID   string
	Text string
}

type RemoveAnnotation struct{ ID string }

// NudgeSelection moves every selected unlocked fixture by one snap increment
// in the given direction. One commit for the whole nudge.
type NudgeSelection struct {
	DX, DY int // -1, 0 or 1
}

// Fixture drag transient.

type StartDrag struct {
	ID string
	At design.Point
}

type UpdateDrag struct{ At design.Point }

type EndDrag struct{ At design.Point }

// Zone drag transient.

type StartZoneDrag struct {
	ID string
	At design.Point
}

type UpdateZoneDrag struct{ At design.Point }

type EndZoneDrag struct{ At design.Point }

// Zone resize transient.

type StartZoneResize struct {
	ID     string
	Handle Handle
	At     design.Point
}

type UpdateZoneResize struct{ At design.Point }

type EndZoneResize struct{ At design.Point }

// Wall draw transient.

type StartWallDraw struct{ At design.Point }

type UpdateWallDraw struct{ At design.Point }

type EndWallDraw struct{ At design.Point }

// Wall length drag transient.

type StartWallLengthDrag struct {
	ID string
	At design.Point
}

type UpdateWallLengthDrag struct{ At design.Point }

type EndWallLengthDrag struct{ At design.Point }

// Annotation drag transient.

type StartAnnotationDrag struct {
	ID   string
	Part AnnotationPart
	At   design.Point
}

type UpdateAnnotationDrag struct{ At design.Point }

type EndAnnotationDrag struct{ At design.Point }

// Marquee transient.

type StartMarquee struct{ At design.Point }

type UpdateMarquee struct{ At design.Point }

type EndMarquee struct{ At design.Point }

// Selection. Selection changes never commit history.

type SelectFixture struct {
	ID     string
	Append bool // modifier-click adds to the selection
}

type SelectZone struct{ ID string }

type SelectAnnotation struct{ ID string }

type ClearSelection struct{}

// Tool and overlay.

type SetTool struct{ Tool Tool }

// MeasureClick appends a point to the measure overlay; a third click restarts
// the overlay at that point.
type MeasureClick struct{ At design.Point }

// ClearMeasure drops the measure overlay.
type ClearMeasure struct{}

// History.

type Undo struct{}

type Redo struct{}

// Viewport. Never undoable.

type PanViewport struct{ DX, DY float64 } // viewbox units

type ZoomViewport struct {
	At     design.Point // viewbox position to keep stationary
	Factor float64
}

type SetSnapIncrement struct{ Increment float64 }

// PointerCancel ends whatever transient owns the pointer using its last known
// position, as if the pointer had been released there. Hosts dispatch it when
// pointer capture is lost mid-gesture.
type PointerCancel struct{}

// Escape aborts any in-flight transient without committing; with no transient
// active it clears the measure overlay, then the selection.
type Escape struct{}

func (AddFixture) isAction()            {}
func (RemoveFixture) isAction()         {}
func (RemoveSelection) isAction()       {}
func (UpdateFixtureRotation) isAction() {}
func (UpdateFixtureProperty) isAction() {}
func (SetFixtureLocked) isAction()      {}
func (AssignZone) isAction()            {}
func (AddZone) isAction()               {}
func (RemoveZone) isAction()            {}
func (RenameZone) isAction()            {}
func (AddAnnotation) isAction()         {}
func (UpdateAnnotationText) isAction()  {}
func (RemoveAnnotation) isAction()      {}
func (NudgeSelection) isAction()        {}
func (StartDrag) isAction()             {}
func (UpdateDrag) isAction()            {}
func (EndDrag) isAction()               {}
func (StartZoneDrag) isAction()         {}
func (UpdateZoneDrag) isAction()        {}
func (EndZoneDrag) isAction()           {}
func (StartZoneResize) isAction()       {}
func (UpdateZoneResize) isAction()      {}
func (EndZoneResize) isAction()         {}
func (StartWallDraw) isAction()         {}
func (UpdateWallDraw) isAction()        {}
func (EndWallDraw) isAction()           {}
func (StartWallLengthDrag) isAction()   {}
func (UpdateWallLengthDrag) isAction()  {}
func (EndWallLengthDrag) isAction()     {}
func (StartAnnotationDrag) isAction()   {}
func (UpdateAnnotationDrag) isAction()  {}
func (EndAnnotationDrag) isAction()     {}
func (StartMarquee) isAction()          {}
func (UpdateMarquee) isAction()         {}
func (EndMarquee) isAction()            {}
func (SelectFixture) isAction()         {}
func (SelectZone) isAction()            {}
func (SelectAnnotation) isAction()      {}
func (ClearSelection) isAction()        {}
func (SetTool) isAction()               {}
func (MeasureClick) isAction()          {}
func (ClearMeasure) isAction()          {}
func (Undo) isAction()                  {}
func (Redo) isAction()                  {}
func (PanViewport) isAction()           {}
func (ZoomViewport) isAction()          {}
func (SetSnapIncrement) isAction()      {}
func (PointerCancel) isAction()         {}
func (Escape) isAction()                {}
