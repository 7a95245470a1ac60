package geometry

import (
	"math"

	"fitplan/catalog"
	"fitplan/design"
)

// GuideThresholdFt is the edge-proximity distance at which an alignment guide
// appears.
const GuideThresholdFt = 0.25

// GuideOrientation distinguishes vertical from horizontal guides.
type GuideOrientation int

const (
	GuideVertical   GuideOrientation = iota // constant-x line
	GuideHorizontal                         // constant-y line
)

// Guide is one alignment guide line for the renderer. Position is the x
// coordinate for vertical guides and the y coordinate for horizontal ones;
// From/To give the extent to draw, spanning both rectangles involved.
type Guide struct {
	Orientation GuideOrientation
	Position    float64
	From        design.Point
	To          design.Point
}

// AlignmentGuides emits guides where the selected fixture's edges nearly line
// up with another fixture's edges. Guides are only computed for a single
// selection; multi-selects get none. Left/right edges produce vertical
// guides, top/bottom edges horizontal ones.
func AlignmentGuides(fixtures []design.Fixture, selectedID string, cat catalog.Lookup) []Guide {
	var sel *design.Fixture
	for i := range fixtures {
		if fixtures[i].ID == selectedID {
			sel = &fixtures[i]
			break
		}
	}
	if sel == nil {
		return nil
	}
	selItem, ok := cat.Lookup(sel.CatalogKey)
	if !ok {
		return nil
	}
	selRect := FixtureRect(*sel, selItem)

	var guides []Guide
	for _, f := range fixtures {
		if f.ID == selectedID {
			continue
		}
		item, ok := cat.Lookup(f.CatalogKey)
		if !ok {
			continue
		}
		r := FixtureRect(f, item)

		for _, x := range []float64{r.X, r.MaxX()} {
			if near(selRect.X, x) || near(selRect.MaxX(), x) {
				guides = append(guides, verticalGuide(x, selRect, r))
			}
		}
		for _, y := range []float64{r.Y, r.MaxY()} {
			if near(selRect.Y, y) || near(selRect.MaxY(), y) {
				guides = append(guides, horizontalGuide(y, selRect, r))
			}
		}
	}
	return guides
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= GuideThresholdFt
}

func verticalGuide(x float64, a, b Rect) Guide {
	minY := math.Min(a.Y, b.Y)
	maxY := math.Max(a.MaxY(), b.MaxY())
	return Guide{
		Orientation: GuideVertical,
		Position:    x,
		From:        design.Point{X: x, Y: minY},
		To:          design.Point{X: x, Y: maxY},
	}
}

func horizontalGuide(y float64, a, b Rect) Guide {
	minX := math.Min(a.X, b.X)
	maxX := math.Max(a.MaxX(), b.MaxX())
	return Guide{
		Orientation: GuideHorizontal,
		Position:    y,
		From:        design.Point{X: minX, Y: y},
		To:          design.Point{X: maxX, Y: y},
	}
}

// SelectionBounds returns the bounding box of the union of the selected
// fixtures' rectangles, or nil when nothing resolvable is selected. Missing
// ids and unknown catalog keys are filtered, never an error.
func SelectionBounds(fixtures []design.Fixture, selectedIDs []string, cat catalog.Lookup) *Rect {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var bounds *Rect
	for _, f := range fixtures {
		if !selected[f.ID] {
			continue
		}
		item, ok := cat.Lookup(f.CatalogKey)
		if !ok {
			continue
		}
		r := FixtureRect(f, item)
		if bounds == nil {
			b := r
			bounds = &b
		} else {
			b := bounds.Union(r)
			bounds = &b
		}
	}
	return bounds
}
