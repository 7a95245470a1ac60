package editor

import (
	"testing"

	"fitplan/design"
)

func TestWallDrawCommitsAxisAlignedWall(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolWall})

	e.Dispatch(StartWallDraw{At: design.Point{X: 2, Y: 3}})
	e.Dispatch(UpdateWallDraw{At: design.Point{X: 5, Y: 3.2}})
	e.Dispatch(EndWallDraw{At: design.Point{X: 8, Y: 3.2}})

	if e.WallDraw() != nil {
		t.Fatalf("wall draw transient survived END")
	}
	if e.Tool() != ToolSelect {
		t.Errorf("tool did not return to select after wall commit")
	}
	if len(e.Design().Fixtures) != 1 {
		t.Fatalf("wall not committed: %d fixtures", len(e.Design().Fixtures))
	}
	w := e.Design().Fixtures[0]
	if w.CatalogKey != "wall" || w.RotationDeg != 0 {
		t.Errorf("wall = %+v", w)
	}
	if length, _ := w.LengthOverride(); length != 6 {
		t.Errorf("wall length = %v, want 6", length)
	}
	if w.XFt != 2 || w.YFt != 3 {
		t.Errorf("wall anchor = (%v, %v), want (2, 3)", w.XFt, w.YFt)
	}
}

func TestWallDrawVertical(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolWall})
	e.Dispatch(StartWallDraw{At: design.Point{X: 4, Y: 6}})
	e.Dispatch(EndWallDraw{At: design.Point{X: 4.1, Y: 1}})

	w := e.Design().Fixtures[0]
	if w.RotationDeg != 90 {
		t.Errorf("vertical wall rotation = %d, want 90", w.RotationDeg)
	}
	if length, _ := w.LengthOverride(); length != 5 {
		t.Errorf("wall length = %v, want 5", length)
	}
	if w.YFt != 1 {
		t.Errorf("wall anchored at y=%v, want min corner 1", w.YFt)
	}
}

func TestShortWallDiscarded(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolWall})

	e.Dispatch(StartWallDraw{At: design.Point{X: 0, Y: 0}})
	e.Dispatch(EndWallDraw{At: design.Point{X: 0, Y: 0.3}})

	if e.WallDraw() != nil {
		t.Errorf("wallDraw transient non-nil after discard")
	}
	if len(e.Design().Fixtures) != 0 {
		t.Errorf("short wall was committed")
	}
	if past, _ := e.HistoryDepths(); past != 0 {
		t.Errorf("discarded wall pushed history")
	}
	if e.Tool() != ToolWall {
		t.Errorf("discard left the wall tool")
	}
}

func TestWallLengthDragFarEnd(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolWall})
	e.Dispatch(StartWallDraw{At: design.Point{X: 2, Y: 3}})
	e.Dispatch(EndWallDraw{At: design.Point{X: 8, Y: 3}})
	id := e.PrimaryID()

	// Grab near the far end (x=8) and pull to x=10.
	e.Dispatch(StartWallLengthDrag{ID: id, At: design.Point{X: 7.9, Y: 3.2}})
	if e.WallLengthDrag() == nil {
		t.Fatalf("wall length drag did not start")
	}
	e.Dispatch(EndWallLengthDrag{At: design.Point{X: 10, Y: 3.2}})

	w := e.Design().Fixture(id)
	if length, _ := w.LengthOverride(); length != 8 {
		t.Errorf("wall length = %v, want 8", length)
	}
	if w.XFt != 2 {
		t.Errorf("anchor moved on far-end drag: %v", w.XFt)
	}
}

func TestWallLengthDragNearEndMovesAnchor(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolWall})
	e.Dispatch(StartWallDraw{At: design.Point{X: 2, Y: 3}})
	e.Dispatch(EndWallDraw{At: design.Point{X: 8, Y: 3}})
	id := e.PrimaryID()

	e.Dispatch(StartWallLengthDrag{ID: id, At: design.Point{X: 2.1, Y: 3.2}})
	e.Dispatch(EndWallLengthDrag{At: design.Point{X: 4, Y: 3.2}})

	w := e.Design().Fixture(id)
	if w.XFt != 4 {
		t.Errorf("anchor = %v, want 4", w.XFt)
	}
	if length, _ := w.LengthOverride(); length != 4 {
		t.Errorf("length = %v, want 4", length)
	}
}

func TestWallLengthDragInversionClamps(t *testing.T) {
	e := testEditor()
	e.Dispatch(SetTool{Tool: ToolWall})
	e.Dispatch(StartWallDraw{At: design.Point{X: 2, Y: 3}})
	e.Dispatch(EndWallDraw{At: design.Point{X: 8, Y: 3}})
	id := e.PrimaryID()

	// Dragging the far end past the near end clamps at the minimum length.
	e.Dispatch(StartWallLengthDrag{ID: id, At: design.Point{X: 7.9, Y: 3.2}})
	e.Dispatch(EndWallLengthDrag{At: design.Point{X: 0, Y: 3.2}})

	w := e.Design().Fixture(id)
	if length, _ := w.LengthOverride(); length != MinWallLengthFt {
		t.Errorf("inverted drag length = %v, want %v", length, MinWallLengthFt)
	}
}

func TestWallLengthDragRejectsNonWall(t *testing.T) {
	e := testEditor()
	id := addBox(t, e, 5, 4)
	e.Dispatch(StartWallLengthDrag{ID: id, At: design.Point{X: 5, Y: 4}})
	if e.WallLengthDrag() != nil {
		t.Errorf("length drag started on a non-wall fixture")
	}
}
