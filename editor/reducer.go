package editor

import (
	"reflect"

	"fitplan/design"
	"fitplan/geometry"
)

// Dispatch is the single mutation entry point. Malformed or out-of-sequence
// actions degrade to a no-op; Dispatch never panics on bad input.
func (e *Editor) Dispatch(action Action) {
	switch a := action.(type) {
	case AddFixture:
		e.addFixture(a)
	case RemoveFixture:
		e.removeFixtures([]string{a.ID})
	case RemoveSelection:
		e.removeSelection()
	case UpdateFixtureRotation:
		e.updateRotation(a)
	case UpdateFixtureProperty:
		e.updateProperty(a)
	case SetFixtureLocked:
		e.setLocked(a)
	case AssignZone:
		e.assignZone(a)
	case AddZone:
		e.addZone(a)
	case RemoveZone:
		e.removeZone(a.ID)
	case RenameZone:
		e.renameZone(a)
	case AddAnnotation:
		e.addAnnotation(a)
	case UpdateAnnotationText:
		e.updateAnnotationText(a)
	case RemoveAnnotation:
		e.removeAnnotation(a.ID)
	case NudgeSelection:
		e.nudgeSelection(a)

	case StartDrag:
		e.startDrag(a)
	case UpdateDrag:
		e.updateDrag(a.At)
	case EndDrag:
		e.endDrag(a.At)
	case StartZoneDrag:
		e.startZoneDrag(a)
	case UpdateZoneDrag:
		e.updateZoneDrag(a.At)
	case EndZoneDrag:
		e.endZoneDrag(a.At)
	case StartZoneResize:
		e.startZoneResize(a)
	case UpdateZoneResize:
		e.updateZoneResize(a.At)
	case EndZoneResize:
		e.endZoneResize(a.At)
	case StartWallDraw:
		e.startWallDraw(a.At)
	case UpdateWallDraw:
		e.updateWallDraw(a.At)
	case EndWallDraw:
		e.endWallDraw(a.At)
	case StartWallLengthDrag:
		e.startWallLengthDrag(a)
	case UpdateWallLengthDrag:
		e.updateWallLengthDrag(a.At)
	case EndWallLengthDrag:
		e.endWallLengthDrag(a.At)
	case StartAnnotationDrag:
		e.startAnnotationDrag(a)
	case UpdateAnnotationDrag:
		e.updateAnnotationDrag(a.At)
	case EndAnnotationDrag:
		e.endAnnotationDrag(a.At)
	case StartMarquee:
		e.startMarquee(a.At)
	case UpdateMarquee:
		e.updateMarquee(a.At)
	case EndMarquee:
		e.endMarquee(a.At)

	case SelectFixture:
		e.selectFixture(a)
	case SelectZone:
		e.selectZone(a.ID)
	case SelectAnnotation:
		e.selectAnnotation(a.ID)
	case ClearSelection:
		e.clearSelection()

	case SetTool:
		e.setTool(a.Tool)
	case MeasureClick:
		e.measureClick(a.At)
	case ClearMeasure:
		e.measure = nil

	case Undo:
		e.undo()
	case Redo:
		e.redo()

	case PanViewport:
		e.viewport = e.viewport.PanBy(a.DX, a.DY)
	case ZoomViewport:
		if a.Factor > 0 {
			e.viewport = e.viewport.ZoomAt(a.At.X, a.At.Y, a.Factor)
		}
	case SetSnapIncrement:
		if a.Increment > 0 {
			e.snapIncrement = a.Increment
		}

	case PointerCancel:
		e.pointerCancel()
	case Escape:
		e.escape()
	}
}

// commit runs fn against the document as one undoable step. fn reports
// whether it changed anything; an untouched document records no history.
func (e *Editor) commit(msg string, fn func(d *design.Design) bool) {
	prev := e.design.Clone()
	if !fn(e.design) {
		return
	}
	e.history.Record(prev)
	e.observe("commit", msg, nil)
}

func (e *Editor) addFixture(a AddFixture) {
	item, ok := e.catalog.Lookup(a.CatalogKey)
	if !ok {
		e.observe("reject", "unknown catalog key", map[string]any{"key": a.CatalogKey})
		return
	}
	id := design.NewID()
	e.commit("add fixture", func(d *design.Design) bool {
		f := design.Fixture{
			ID:         id,
			CatalogKey: a.CatalogKey,
			XFt:        a.At.X,
			YFt:        a.At.Y,
			Zone:       a.Zone,
		}
		// Keep the new fixture inside the shell from the start.
		r := geometry.ClampRectToShell(geometry.FixtureRect(f, item), d.Shell)
		dx, dy := geometry.AnchorOffset(f, item)
		f.XFt, f.YFt = r.X+dx, r.Y+dy
		d.Fixtures = append(d.Fixtures, f)
		return true
	})
	e.selectedIDs = []string{id}
	e.primaryID = id
}

// removeFixtures deletes the given fixtures in one commit. A transient
// targeting a removed fixture is invalidated first so no dangling reference
// survives the removal.
func (e *Editor) removeFixtures(ids []string) {
	targets := make(map[string]bool, len(ids))
	for _, id := range ids {
		if e.design.Fixture(id) != nil {
			targets[id] = true
		}
	}
	if len(targets) == 0 {
		return
	}
	if e.drag != nil && targets[e.drag.ID] {
		e.drag = nil
	}
	if e.wallLengthDrag != nil && targets[e.wallLengthDrag.ID] {
		e.wallLengthDrag = nil
	}
	e.commit("remove fixtures", func(d *design.Design) bool {
		changed := false
		for id := range targets {
			if d.RemoveFixture(id) {
				changed = true
			}
		}
		return changed
	})
	e.pruneSelection()
}

func (e *Editor) removeSelection() {
	e.pruneSelection()
	switch {
	case len(e.selectedIDs) > 0:
		e.removeFixtures(e.selectedIDs)
	case e.SelectedZoneID() != "":
		e.removeZone(e.selectedZoneID)
	case e.SelectedAnnotationID() != "":
		e.removeAnnotation(e.selectedAnnotationID)
	}
}

func (e *Editor) updateRotation(a UpdateFixtureRotation) {
	f := e.design.Fixture(a.ID)
	if f == nil || f.Locked {
		return
	}
	rot := design.NormalizeRotation(a.RotationDeg)
	if rot == f.RotationDeg {
		return
	}
	e.commit("rotate fixture", func(d *design.Design) bool {
		d.Fixture(a.ID).RotationDeg = rot
		return true
	})
}

func (e *Editor) updateProperty(a UpdateFixtureProperty) {
	if a.Key == "" || e.design.Fixture(a.ID) == nil {
		return
	}
	e.commit("update property", func(d *design.Design) bool {
		f := d.Fixture(a.ID)
		if f.Properties == nil {
			f.Properties = make(map[string]any, 1)
		}
		// Property values round-trip through JSON, so slices and maps show
		// up here; DeepEqual keeps the comparison from panicking on them.
		if old, ok := f.Properties[a.Key]; ok && reflect.DeepEqual(old, a.Value) {
			return false
		}
		f.Properties[a.Key] = a.Value
		return true
	})
}

func (e *Editor) setLocked(a SetFixtureLocked) {
	f := e.design.Fixture(a.ID)
	if f == nil || f.Locked == a.Locked {
		return
	}
	if a.Locked && e.drag != nil && e.drag.ID == a.ID {
		// Locking the fixture mid-drag aborts the drag.
		e.drag = nil
	}
	e.commit("set locked", func(d *design.Design) bool {
		d.Fixture(a.ID).Locked = a.Locked
		return true
	})
}

func (e *Editor) assignZone(a AssignZone) {
	f := e.design.Fixture(a.FixtureID)
	if f == nil || f.Zone == a.ZoneID {
		return
	}
	if a.ZoneID != "" && e.design.Zone(a.ZoneID) == nil {
		return
	}
	e.commit("assign zone", func(d *design.Design) bool {
		d.Fixture(a.FixtureID).Zone = a.ZoneID
		return true
	})
}

func (e *Editor) addZone(a AddZone) {
	z := a.Rect
	z.ID = design.NewID()
	if a.Name != "" {
		z.Name = a.Name
	}
	if z.LengthFt <= 0 || z.WidthFt <= 0 {
		return
	}
	e.commit("add zone", func(d *design.Design) bool {
		d.Zones = append(d.Zones, z)
		return true
	})
	e.selectedZoneID = z.ID
}

func (e *Editor) removeZone(id string) {
	if e.design.Zone(id) == nil {
		return
	}
	if e.zoneDrag != nil && e.zoneDrag.ID == id {
		e.zoneDrag = nil
	}
	if e.zoneResize != nil && e.zoneResize.ID == id {
		e.zoneResize = nil
	}
	e.commit("remove zone", func(d *design.Design) bool {
		return d.RemoveZone(id)
	})
	if e.selectedZoneID == id {
		e.selectedZoneID = ""
	}
}

func (e *Editor) renameZone(a RenameZone) {
	z := e.design.Zone(a.ID)
	if z == nil || z.Name == a.Name {
		return
	}
	e.commit("rename zone", func(d *design.Design) bool {
		d.Zone(a.ID).Name = a.Name
		return true
	})
}

func (e *Editor) addAnnotation(a AddAnnotation) {
	anchor := geometry.SnapPoint(a.At, e.snapIncrement)
	id := design.NewID()
	e.commit("add annotation", func(d *design.Design) bool {
		d.Annotations = append(d.Annotations, design.Annotation{
			ID:       id,
			AnchorFt: anchor,
			LabelFt:  anchor.Add(AnnotationLabelOffset.X, AnnotationLabelOffset.Y),
			Text:     a.Text,
		})
		return true
	})
	e.selectedAnnotationID = id
	if e.tool == ToolAnnotate {
		e.setTool(ToolSelect)
	}
}

func (e *Editor) updateAnnotationText(a UpdateAnnotationText) {
	an := e.design.Annotation(a.ID)
	if an == nil || an.Text == a.Text {
		return
	}
	e.commit("edit annotation", func(d *design.Design) bool {
		d.Annotation(a.ID).Text = a.Text
		return true
	})
}

func (e *Editor) removeAnnotation(id string) {
	if e.design.Annotation(id) == nil {
		return
	}
	if e.annotationDrag != nil && e.annotationDrag.ID == id {
		e.annotationDrag = nil
	}
	e.commit("remove annotation", func(d *design.Design) bool {
		return d.RemoveAnnotation(id)
	})
	if e.selectedAnnotationID == id {
		e.selectedAnnotationID = ""
	}
}

func (e *Editor) nudgeSelection(a NudgeSelection) {
	e.pruneSelection()
	if len(e.selectedIDs) == 0 || (a.DX == 0 && a.DY == 0) {
		return
	}
	step := e.snapIncrement
	e.commit("nudge selection", func(d *design.Design) bool {
		changed := false
		for _, id := range e.selectedIDs {
			f := d.Fixture(id)
			if f == nil || f.Locked {
				continue
			}
			item, ok := e.catalog.Lookup(f.CatalogKey)
			if !ok {
				continue
			}
			moved := *f
			moved.XFt += float64(a.DX) * step
			moved.YFt += float64(a.DY) * step
			r := geometry.ClampRectToShell(geometry.FixtureRect(moved, item), d.Shell)
			dx, dy := geometry.AnchorOffset(moved, item)
			moved.XFt, moved.YFt = r.X+dx, r.Y+dy
			if moved.XFt != f.XFt || moved.YFt != f.YFt {
				f.XFt, f.YFt = moved.XFt, moved.YFt
				changed = true
			}
		}
		return changed
	})
}

func (e *Editor) selectFixture(a SelectFixture) {
	f := e.design.Fixture(a.ID)
	if f == nil {
		return
	}
	e.selectedZoneID = ""
	e.selectedAnnotationID = ""
	if a.Append {
		for i, id := range e.selectedIDs {
			if id == a.ID {
				// Modifier-click on a selected fixture deselects it.
				e.selectedIDs = append(e.selectedIDs[:i], e.selectedIDs[i+1:]...)
				if e.primaryID == a.ID {
					e.primaryID = ""
					if len(e.selectedIDs) > 0 {
						e.primaryID = e.selectedIDs[len(e.selectedIDs)-1]
					}
				}
				return
			}
		}
		e.selectedIDs = append(e.selectedIDs, a.ID)
	} else {
		e.selectedIDs = []string{a.ID}
	}
	e.primaryID = a.ID
}

func (e *Editor) selectZone(id string) {
	if e.design.Zone(id) == nil {
		return
	}
	e.selectedIDs = nil
	e.primaryID = ""
	e.selectedAnnotationID = ""
	e.selectedZoneID = id
}

func (e *Editor) selectAnnotation(id string) {
	if e.design.Annotation(id) == nil {
		return
	}
	e.selectedIDs = nil
	e.primaryID = ""
	e.selectedZoneID = ""
	e.selectedAnnotationID = id
}

func (e *Editor) clearSelection() {
	e.selectedIDs = nil
	e.primaryID = ""
	e.selectedZoneID = ""
	e.selectedAnnotationID = ""
}

func (e *Editor) setTool(t Tool) {
	if t < ToolSelect || t > ToolAnnotate {
		return
	}
	if t != e.tool {
		e.cancelTransient()
		if e.tool == ToolMeasure {
			e.measure = nil
		}
		e.tool = t
		e.observe("tool", t.String(), nil)
	}
}

func (e *Editor) measureClick(at design.Point) {
	if len(e.measure) >= 2 {
		e.measure = []design.Point{at}
		return
	}
	e.measure = append(e.measure, at)
}

func (e *Editor) undo() {
	restored, ok := e.history.Undo(e.design)
	if !ok {
		return
	}
	e.cancelTransient()
	e.design = restored
	e.pruneSelection()
	e.observe("undo", "", nil)
}

func (e *Editor) redo() {
	restored, ok := e.history.Redo(e.design)
	if !ok {
		return
	}
	e.cancelTransient()
	e.design = restored
	e.pruneSelection()
	e.observe("redo", "", nil)
}

// pointerCancel treats a lost pointer as a release at the last known
// position, so gestures never dangle.
func (e *Editor) pointerCancel() {
	switch {
	case e.drag != nil:
		e.endDrag(e.drag.Current)
	case e.zoneDrag != nil:
		e.endZoneDrag(e.zoneDrag.Current)
	case e.zoneResize != nil:
		e.endZoneResize(e.zoneResize.Current)
	case e.marquee != nil:
		e.endMarquee(e.marquee.Current)
	case e.wallDraw != nil:
		e.endWallDraw(e.wallDraw.Current)
	case e.wallLengthDrag != nil:
		e.endWallLengthDrag(e.wallLengthDrag.Current)
	case e.annotationDrag != nil:
		e.endAnnotationDrag(e.annotationDrag.Current)
	}
}

func (e *Editor) escape() {
	if e.hasTransient() {
		e.cancelTransient()
		return
	}
	if len(e.measure) > 0 {
		e.measure = nil
		return
	}
	e.clearSelection()
}
