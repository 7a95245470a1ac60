package editor

import (
	"testing"

	"fitplan/catalog"
	"fitplan/design"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]catalog.Item{
		"box": {
			Footprint: catalog.Footprint{LengthFt: 2, WidthFt: 2},
			Anchor:    catalog.AnchorCenter,
		},
		"wall": {
			Footprint: catalog.Footprint{LengthFt: 4, WidthFt: 0.4},
			Anchor:    catalog.AnchorFrontLeft,
			Kind:      catalog.KindWall,
		},
	})
}

func testEditor() *Editor {
	doc := &design.Design{Shell: design.Shell{LengthFt: 20, WidthFt: 8, HeightFt: 8.5}}
	return New(doc, testCatalog(), Options{})
}

func addBox(t *testing.T, e *Editor, x, y float64) string {
	t.Helper()
	e.Dispatch(AddFixture{CatalogKey: "box", At: design.Point{X: x, Y: y}})
	id := e.PrimaryID()
	if id == "" {
		t.Fatalf("AddFixture did not select the new fixture")
	}
	return id
}

func TestAddFixtureCommitsAndSelects(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)

	f := e.Design().Fixture(id)
	if f == nil || f.XFt != 5 || f.YFt != 4 {
		t.Fatalf("fixture = %+v", f)
	}
	if past, _ := e.HistoryDepths(); past != 1 {
		t.Errorf("history depth after add = %d, want 1", past)
	}
}

func TestAddFixtureUnknownKeyNoOp(t *testing.T) {
	e := testEditor()
	e.Dispatch(AddFixture{CatalogKey: "mystery", At: design.Point{X: 1, Y: 1}})
	if len(e.Design().Fixtures) != 0 {
		t.Errorf("unknown catalog key added a fixture")
	}
	if past, _ := e.HistoryDepths(); past != 0 {
		t.Errorf("unknown catalog key pushed history")
	}
}

func TestUpdateFixtureProperty(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	before, _ := e.HistoryDepths()

	e.Dispatch(UpdateFixtureProperty{ID: id, Key: "finish", Value: "chrome"})
	if got := e.Design().Fixture(id).Properties["finish"]; got != "chrome" {
		t.Fatalf("finish = %v, want chrome", got)
	}
	if past, _ := e.HistoryDepths(); past != before+1 {
		t.Errorf("property set pushed %d entries, want 1", past-before)
	}

	// Same value again is a no-op.
	e.Dispatch(UpdateFixtureProperty{ID: id, Key: "finish", Value: "chrome"})
	if past, _ := e.HistoryDepths(); past != before+1 {
		t.Errorf("repeated property set pushed history")
	}
}

func TestUpdateFixturePropertySliceValue(t *testing.T) {
	// Values loaded back from JSON can be slices or maps, which are not
	// comparable with ==; repeating one must stay a quiet no-op.
	e := testEditor()
	id := addBox(t, e, 5, 4)

	e.Dispatch(UpdateFixtureProperty{ID: id, Key: "colors", Value: []string{"red"}})
	before, _ := e.HistoryDepths()
	e.Dispatch(UpdateFixtureProperty{ID: id, Key: "colors", Value: []string{"red"}})
	if past, _ := e.HistoryDepths(); past != before {
		t.Errorf("repeated slice property pushed history")
	}

	e.Dispatch(UpdateFixtureProperty{ID: id, Key: "colors", Value: []string{"red", "blue"}})
	if past, _ := e.HistoryDepths(); past != before+1 {
		t.Errorf("changed slice property did not commit")
	}
}

func TestDragCoalescesToOneHistoryEntry(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	before, _ := e.HistoryDepths()

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	for i := 0; i < 100; i++ {
		e.Dispatch(UpdateDrag{At: design.Point{X: 5 + float64(i)*0.01, Y: 4}})
	}
	e.Dispatch(EndDrag{At: design.Point{X: 5.37, Y: 3.1}})

	after, future := e.HistoryDepths()
	if after != before+1 {
		t.Errorf("drag pushed %d history entries, want 1", after-before)
	}
	if future != 0 {
		t.Errorf("future stack non-empty after commit")
	}

	f := e.Design().Fixture(id)
	if f.XFt != 5.25 || f.YFt != 3.0 {
		t.Errorf("final position = (%v, %v), want (5.25, 3.0)", f.XFt, f.YFt)
	}

	e.Dispatch(Undo{})
	f = e.Design().Fixture(id)
	if f.XFt != 5 || f.YFt != 4 {
		t.Errorf("undo restored (%v, %v), want (5, 4)", f.XFt, f.YFt)
	}
}

func TestTapWithoutMovementDoesNotCommit(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	before, _ := e.HistoryDepths()

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	e.Dispatch(UpdateDrag{At: design.Point{X: 5.01, Y: 4.01}})
	e.Dispatch(EndDrag{At: design.Point{X: 5.01, Y: 4.01}})

	if after, _ := e.HistoryDepths(); after != before {
		t.Errorf("tap committed history")
	}
	if e.Drag() != nil {
		t.Errorf("drag transient survived END")
	}
}

func TestLockedFixtureImmuneToDrag(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	e.Dispatch(SetFixtureLocked{ID: id, Locked: true})

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	if e.Drag() != nil {
		t.Fatalf("locked fixture acquired a drag transient")
	}

	e.Dispatch(UpdateFixtureRotation{ID: id, RotationDeg: 90})
	if e.Design().Fixture(id).RotationDeg != 0 {
		t.Errorf("locked fixture rotated")
	}
}

func TestTransientExclusivity(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	e.Dispatch(AddZone{Name: "galley", Rect: design.Zone{XFt: 0, YFt: 0, LengthFt: 8, WidthFt: 8}})
	zoneID := e.SelectedZoneID()

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	dragBefore := e.Drag()
	if dragBefore == nil {
		t.Fatalf("drag did not start")
	}

	e.Dispatch(StartZoneResize{ID: zoneID, Handle: HandleSE, At: design.Point{X: 8, Y: 8}})
	if e.ZoneResize() != nil {
		t.Errorf("zone resize started while a fixture drag was active")
	}
	if got := e.Drag(); got == nil || *got != *dragBefore {
		t.Errorf("fixture drag transient was disturbed: %+v", got)
	}
}

func TestRemoveFixtureInvalidatesActiveDrag(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	e.Dispatch(UpdateDrag{At: design.Point{X: 7, Y: 4}})
	e.Dispatch(RemoveFixture{ID: id})

	if e.Drag() != nil {
		t.Errorf("drag transient dangles after its target was removed")
	}
	if e.Design().Fixture(id) != nil {
		t.Errorf("fixture not removed")
	}
	if got := e.SelectedIDs(); len(got) != 0 {
		t.Errorf("selection still references removed fixture: %v", got)
	}
}

func TestUndoEmptyHistoryNoOp(t *testing.T) {
	e := testEditor()
	before := e.Design()
	e.Dispatch(Undo{})
	if e.Design() != before {
		t.Errorf("undo on empty history replaced the document")
	}
	if past, future := e.HistoryDepths(); past != 0 || future != 0 {
		t.Errorf("undo on empty history touched the stacks: %d, %d", past, future)
	}
}

func TestSelectionDoesNotCommitHistory(t *testing.T) {
	e := testEditor()
	a := addBox(t, e, 3, 3)
	b := addBox(t, e, 9, 5)
	before, _ := e.HistoryDepths()

	e.Dispatch(SelectFixture{ID: a})
	e.Dispatch(SelectFixture{ID: b, Append: true})
	e.Dispatch(ClearSelection{})

	if after, _ := e.HistoryDepths(); after != before {
		t.Errorf("selection changes committed history")
	}
}

func TestSelectFixtureAppendToggles(t *testing.T) {
	e := testEditor()
	a := addBox(t, e, 3, 3)
	b := addBox(t, e, 9, 5)

	e.Dispatch(SelectFixture{ID: a})
	e.Dispatch(SelectFixture{ID: b, Append: true})
	if got := e.SelectedIDs(); len(got) != 2 {
		t.Fatalf("append select: %v", got)
	}
	// Modifier-click on an already selected fixture removes it.
	e.Dispatch(SelectFixture{ID: a, Append: true})
	got := e.SelectedIDs()
	if len(got) != 1 || got[0] != b {
		t.Errorf("toggle deselect: %v", got)
	}
	if e.PrimaryID() != b {
		t.Errorf("primary = %q, want %q", e.PrimaryID(), b)
	}
}

func TestNudgeSelectionSingleCommit(t *testing.T) {
	e := testEditor()
	a := addBox(t, e, 3, 3)
	b := addBox(t, e, 9, 5)
	e.Dispatch(SelectFixture{ID: a})
	e.Dispatch(SelectFixture{ID: b, Append: true})
	before, _ := e.HistoryDepths()

	e.Dispatch(NudgeSelection{DX: 1})

	if after, _ := e.HistoryDepths(); after != before+1 {
		t.Errorf("nudge committed %d entries", after-before)
	}
	if f := e.Design().Fixture(a); f.XFt != 3.25 {
		t.Errorf("fixture a nudged to %v, want 3.25", f.XFt)
	}
	if f := e.Design().Fixture(b); f.XFt != 9.25 {
		t.Errorf("fixture b nudged to %v, want 9.25", f.XFt)
	}
}

func TestNudgeClampsAtShellEdge(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 1, 1) // rect {0,0,2,2}
	e.Dispatch(SelectFixture{ID: id})
	before, _ := e.HistoryDepths()

	e.Dispatch(NudgeSelection{DX: -1})

	if f := e.Design().Fixture(id); f.XFt != 1 {
		t.Errorf("fixture escaped the shell: x=%v", f.XFt)
	}
	// A fully clamped nudge changes nothing and must not commit.
	if after, _ := e.HistoryDepths(); after != before {
		t.Errorf("no-op nudge committed history")
	}
}

func TestDragClampedToShell(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	e.Dispatch(EndDrag{At: design.Point{X: 100, Y: 100}})

	f := e.Design().Fixture(id)
	if f.XFt != 19 || f.YFt != 7 { // center anchor, 2x2 footprint in 20x8 shell
		t.Errorf("drag escaped the shell: (%v, %v), want (19, 7)", f.XFt, f.YFt)
	}
}

func TestToolSwitchCancelsTransient(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	before, _ := e.HistoryDepths()

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	e.Dispatch(UpdateDrag{At: design.Point{X: 9, Y: 4}})
	e.Dispatch(SetTool{Tool: ToolPan})

	if e.Drag() != nil {
		t.Errorf("transient survived tool switch")
	}
	if after, _ := e.HistoryDepths(); after != before {
		t.Errorf("cancelled drag committed history")
	}
	if f := e.Design().Fixture(id); f.XFt != 5 {
		t.Errorf("cancelled drag moved the fixture to %v", f.XFt)
	}
}

func TestEscapeCancelsTransientThenSelection(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	e.Dispatch(Escape{})
	if e.Drag() != nil {
		t.Fatalf("escape did not cancel the drag")
	}
	if len(e.SelectedIDs()) != 1 {
		t.Fatalf("first escape should only cancel the transient")
	}
	e.Dispatch(Escape{})
	if len(e.SelectedIDs()) != 0 {
		t.Errorf("second escape did not clear the selection")
	}
}

func TestPointerCancelEndsDragAtLastPosition(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)

	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	e.Dispatch(UpdateDrag{At: design.Point{X: 8, Y: 4}})
	e.Dispatch(PointerCancel{})

	if e.Drag() != nil {
		t.Errorf("drag dangles after pointer cancel")
	}
	if f := e.Design().Fixture(id); f.XFt != 8 {
		t.Errorf("pointer cancel dropped at %v, want 8", f.XFt)
	}
}

func TestViewportActionsNeverCommit(t *testing.T) {
	e := testEditor()
	before, _ := e.HistoryDepths()

	e.Dispatch(PanViewport{DX: 10, DY: -3})
	e.Dispatch(ZoomViewport{At: design.Point{X: 100, Y: 100}, Factor: 2})

	if after, _ := e.HistoryDepths(); after != before {
		t.Errorf("viewport changes committed history")
	}
	if e.Viewport().Scale != 2 {
		t.Errorf("zoom not applied: %v", e.Viewport().Scale)
	}
}

func TestMeasureClicks(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolMeasure})
	e.Dispatch(MeasureClick{At: design.Point{X: 1, Y: 1}})
	e.Dispatch(MeasureClick{At: design.Point{X: 4, Y: 5}})
	if got := e.MeasurePoints(); len(got) != 2 {
		t.Fatalf("measure points = %v", got)
	}
	// Third click restarts the list at that point.
	e.Dispatch(MeasureClick{At: design.Point{X: 9, Y: 9}})
	got := e.MeasurePoints()
	if len(got) != 1 || got[0].X != 9 {
		t.Errorf("third click: %v", got)
	}
	if past, _ := e.HistoryDepths(); past != 0 {
		t.Errorf("measure clicks committed history")
	}
}

func TestZoneLifecycle(t *testing.T) {
	e := testEditor()
	e.Dispatch(AddZone{Name: "berth", Rect: design.Zone{XFt: 1, YFt: 1, LengthFt: 6, WidthFt: 5}})
	zid := e.SelectedZoneID()
	if zid == "" {
		t.Fatalf("zone not selected after add")
	}

	id := addBox(t, e, 3, 3)
	e.Dispatch(AssignZone{FixtureID: id, ZoneID: zid})
	if e.Design().Fixture(id).Zone != zid {
		t.Fatalf("zone assignment failed")
	}

	e.Dispatch(RenameZone{ID: zid, Name: "forward berth"})
	if e.Design().Zone(zid).Name != "forward berth" {
		t.Errorf("rename failed")
	}

	// Removing a zone keeps its fixtures.
	e.Dispatch(RemoveZone{ID: zid})
	if e.Design().Zone(zid) != nil {
		t.Errorf("zone not removed")
	}
	f := e.Design().Fixture(id)
	if f == nil {
		t.Fatalf("fixture deleted with its zone")
	}
	if f.Zone != "" {
		t.Errorf("stale zone reference on fixture: %q", f.Zone)
	}
}

func TestZoneResizeHandlesAndFloor(t *testing.T) {
	e := testEditor()
	e.Dispatch(AddZone{Name: "z", Rect: design.Zone{XFt: 4, YFt: 2, LengthFt: 6, WidthFt: 4}})
	zid := e.SelectedZoneID()

	// East handle may only move the right edge.
	e.Dispatch(StartZoneResize{ID: zid, Handle: HandleE, At: design.Point{X: 10, Y: 4}})
	e.Dispatch(EndZoneResize{At: design.Point{X: 12, Y: 7}})
	z := e.Design().Zone(zid)
	if z.LengthFt != 8 || z.XFt != 4 || z.YFt != 2 || z.WidthFt != 4 {
		t.Errorf("east resize: %+v", z)
	}

	// Shrinking below the minimum clamps at the floor.
	e.Dispatch(StartZoneResize{ID: zid, Handle: HandleE, At: design.Point{X: 12, Y: 4}})
	e.Dispatch(EndZoneResize{At: design.Point{X: 0, Y: 4}})
	z = e.Design().Zone(zid)
	if z.LengthFt != MinZoneSizeFt {
		t.Errorf("resize below floor: length = %v", z.LengthFt)
	}
}

func TestZoneDragClampsAndSnaps(t *testing.T) {
	e := testEditor()
	e.Dispatch(AddZone{Name: "z", Rect: design.Zone{XFt: 1, YFt: 1, LengthFt: 4, WidthFt: 3}})
	zid := e.SelectedZoneID()

	e.Dispatch(StartZoneDrag{ID: zid, At: design.Point{X: 2, Y: 2}})
	e.Dispatch(EndZoneDrag{At: design.Point{X: 2.13, Y: 40}})

	z := e.Design().Zone(zid)
	if z.XFt != 1.25 {
		t.Errorf("zone x = %v, want snapped 1.25", z.XFt)
	}
	if z.YFt != 5 { // 8 - 3
		t.Errorf("zone y = %v, want clamped 5", z.YFt)
	}
}

func TestAnnotationLifecycle(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolAnnotate})
	e.Dispatch(AddAnnotation{At: design.Point{X: 2.1, Y: 3.9}, Text: "check clearance"})

	if e.Tool() != ToolSelect {
		t.Errorf("tool did not revert to select after annotation")
	}
	aid := e.SelectedAnnotationID()
	if aid == "" {
		t.Fatalf("annotation not selected after add")
	}
	an := e.Design().Annotation(aid)
	if an.AnchorFt.X != 2.0 || an.AnchorFt.Y != 4.0 {
		t.Errorf("anchor not snapped: %+v", an.AnchorFt)
	}
	wantLabel := an.AnchorFt.Add(AnnotationLabelOffset.X, AnnotationLabelOffset.Y)
	if an.LabelFt != wantLabel {
		t.Errorf("label = %+v, want %+v", an.LabelFt, wantLabel)
	}

	// Label drags independently of the anchor.
	e.Dispatch(StartAnnotationDrag{ID: aid, Part: AnnotationLabel, At: an.LabelFt})
	e.Dispatch(EndAnnotationDrag{At: an.LabelFt.Add(1, 1)})
	moved := e.Design().Annotation(aid)
	if moved.AnchorFt != an.AnchorFt {
		t.Errorf("anchor moved with the label")
	}
	if moved.LabelFt != wantLabel.Add(1, 1) {
		t.Errorf("label = %+v", moved.LabelFt)
	}

	e.Dispatch(UpdateAnnotationText{ID: aid, Text: "ok"})
	if e.Design().Annotation(aid).Text != "ok" {
		t.Errorf("text edit failed")
	}

	e.Dispatch(RemoveAnnotation{ID: aid})
	if e.Design().Annotation(aid) != nil {
		t.Errorf("annotation not removed")
	}
}

func TestRedoAfterUndo(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	e.Dispatch(StartDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	e.Dispatch(EndDrag{At: design.Point{X: 8, Y: 4}})

	e.Dispatch(Undo{})
	if f := e.Design().Fixture(id); f.XFt != 5 {
		t.Fatalf("undo: x=%v", f.XFt)
	}
	e.Dispatch(Redo{})
	if f := e.Design().Fixture(id); f.XFt != 8 {
		t.Errorf("redo: x=%v, want 8", f.XFt)
	}
}
