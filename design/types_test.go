package design

import "testing"

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{270, 270},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-180, 180},
		{89, 90},
		{44, 0},
		{46, 90},
		{359, 0},
	}
	for _, tt := range tests {
		if got := NormalizeRotation(tt.in); got != tt.want {
			t.Errorf("NormalizeRotation(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := &Design{
		Shell: Shell{LengthFt: 20, WidthFt: 8, HeightFt: 8.5},
		Zones: []Zone{{ID: "z1", Name: "galley", XFt: 0, YFt: 0, LengthFt: 10, WidthFt: 8}},
		Fixtures: []Fixture{{
			ID:         "f1",
			CatalogKey: "sink",
			XFt:        5,
			YFt:        4,
			Properties: map[string]any{"finish": "chrome"},
		}},
		Annotations: []Annotation{{ID: "a1", AnchorFt: Point{X: 1, Y: 1}, LabelFt: Point{X: 3, Y: 2}, Text: "note"}},
	}

	clone := d.Clone()
	clone.Fixtures[0].XFt = 9
	clone.Fixtures[0].Properties["finish"] = "brass"
	clone.Zones[0].Name = "renamed"
	clone.Annotations[0].Text = "changed"

	if d.Fixtures[0].XFt != 5 {
		t.Errorf("clone mutation leaked into original fixture position")
	}
	if d.Fixtures[0].Properties["finish"] != "chrome" {
		t.Errorf("clone mutation leaked into original fixture properties")
	}
	if d.Zones[0].Name != "galley" {
		t.Errorf("clone mutation leaked into original zone")
	}
	if d.Annotations[0].Text != "note" {
		t.Errorf("clone mutation leaked into original annotation")
	}
}

func TestRemoveZoneClearsReferences(t *testing.T) {
	d := &Design{
		Zones: []Zone{{ID: "z1"}, {ID: "z2"}},
		Fixtures: []Fixture{
			{ID: "f1", Zone: "z1"},
			{ID: "f2", Zone: "z2"},
		},
	}
	if !d.RemoveZone("z1") {
		t.Fatalf("RemoveZone returned false for existing zone")
	}
	if d.Fixtures[0].Zone != "" {
		t.Errorf("fixture still references removed zone")
	}
	if d.Fixtures[1].Zone != "z2" {
		t.Errorf("unrelated fixture zone reference was cleared")
	}
	if len(d.Zones) != 1 || d.Zones[0].ID != "z2" {
		t.Errorf("wrong zone removed: %+v", d.Zones)
	}
}

func TestLengthOverride(t *testing.T) {
	f := Fixture{Properties: map[string]any{LengthOverrideProperty: 6.5}}
	if v, ok := f.LengthOverride(); !ok || v != 6.5 {
		t.Errorf("LengthOverride = %v, %v; want 6.5, true", v, ok)
	}
	f = Fixture{}
	if _, ok := f.LengthOverride(); ok {
		t.Errorf("LengthOverride on fixture without properties should be false")
	}
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("NewID produced %q and %q", a, b)
	}
}
