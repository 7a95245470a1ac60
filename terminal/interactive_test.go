package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"fitplan/catalog"
	"fitplan/design"
	"fitplan/editor"
	"fitplan/geometry"
)

func simHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	doc := &design.Design{Shell: design.Shell{LengthFt: 20, WidthFt: 8, HeightFt: 8.5}}
	ed := editor.New(doc, catalog.Builtin(), editor.Options{})
	h := New(ed, Options{DocName: "scratch"})
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(80, 24)
	h.screen = sim
	h.measure()
	return h, sim
}

func countRune(sim tcell.SimulationScreen, want rune) int {
	cells, _, _ := sim.GetContents()
	n := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == want {
			n++
		}
	}
	return n
}

func TestDrawGuidePaintsLines(t *testing.T) {
	h, sim := simHost(t)
	m := h.in.Mapper()

	h.drawGuide(m, geometry.Guide{
		Orientation: geometry.GuideVertical,
		Position:    5,
		From:        design.Point{X: 5, Y: 2},
		To:          design.Point{X: 5, Y: 6},
	})
	h.drawGuide(m, geometry.Guide{
		Orientation: geometry.GuideHorizontal,
		Position:    4,
		From:        design.Point{X: 3, Y: 4},
		To:          design.Point{X: 12, Y: 4},
	})
	sim.Show()

	if n := countRune(sim, tcell.RuneVLine); n == 0 {
		t.Errorf("vertical guide painted no line cells")
	}
	if n := countRune(sim, tcell.RuneHLine); n == 0 {
		t.Errorf("horizontal guide painted no line cells")
	}
}
