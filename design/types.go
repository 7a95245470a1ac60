// Package design contains the fixture-layout document model edited by the
// fitplan editor.
package design

import "github.com/google/uuid"

// Point is a position in design space, measured in feet.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the point translated by dx, dy.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Shell is the fixed rectangular boundary that all zones and fixtures live
// inside. It never changes during an editing session.
type Shell struct {
	LengthFt float64 `json:"lengthFt"`
	WidthFt  float64 `json:"widthFt"`
	HeightFt float64 `json:"heightFt"`
}

// Zone is a named axis-aligned sub-rectangle of the shell used for grouping
// fixtures. Zones are not collision boundaries; deleting a zone leaves its
// fixtures in place.
type Zone struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	XFt      float64 `json:"xFt"`
	YFt      float64 `json:"yFt"`
	LengthFt float64 `json:"lengthFt"`
	WidthFt  float64 `json:"widthFt"`
}

// Fixture is a placed catalog item. XFt/YFt hold the anchor position; how the
// anchor relates to the physical bounding rectangle depends on the catalog
// item's footprint anchor, resolved by the geometry package.
type Fixture struct {
	ID          string         `json:"id"`
	CatalogKey  string         `json:"catalogKey"`
	XFt         float64        `json:"xFt"`
	YFt         float64        `json:"yFt"`
	RotationDeg int            `json:"rotationDeg"`
	Locked      bool           `json:"locked,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
	Zone        string         `json:"zone,omitempty"`
}

// LengthOverrideProperty is the fixture property key that overrides the
// catalog footprint length. Wall fixtures store their drawn length here.
const LengthOverrideProperty = "lengthFt"

// LengthOverride returns the fixture's length-override property, if set.
func (f Fixture) LengthOverride() (float64, bool) {
	v, ok := f.Properties[LengthOverrideProperty]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Annotation is a freeform note with independently movable anchor and label
// points.
type Annotation struct {
	ID       string `json:"id"`
	AnchorFt Point  `json:"anchorFt"`
	LabelFt  Point  `json:"labelFt"`
	Text     string `json:"text"`
}

// Design is the persisted document: one shell plus the zones, fixtures and
// annotations placed inside it.
type Design struct {
	Shell       Shell        `json:"shell"`
	Zones       []Zone       `json:"zones"`
	Fixtures    []Fixture    `json:"fixtures"`
	Annotations []Annotation `json:"annotations"`
}

// NewID returns a fresh unique id for a zone, fixture or annotation.
func NewID() string {
	return uuid.NewString()
}

// NormalizeRotation maps an arbitrary degree value onto the four cardinal
// rotations. Values are rounded to the nearest quarter turn.
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	// Round to the nearest multiple of 90.
	q := (deg + 45) / 90 % 4
	return q * 90
}

// Fixture returns the fixture with the given id, or nil.
func (d *Design) Fixture(id string) *Fixture {
	for i := range d.Fixtures {
		if d.Fixtures[i].ID == id {
			return &d.Fixtures[i]
		}
	}
	return nil
}

// Zone returns the zone with the given id, or nil.
func (d *Design) Zone(id string) *Zone {
	for i := range d.Zones {
		if d.Zones[i].ID == id {
			return &d.Zones[i]
		}
	}
	return nil
}

// Annotation returns the annotation with the given id, or nil.
func (d *Design) Annotation(id string) *Annotation {
	for i := range d.Annotations {
		if d.Annotations[i].ID == id {
			return &d.Annotations[i]
		}
	}
	return nil
}

// RemoveFixture deletes the fixture with the given id. It reports whether a
// fixture was removed.
func (d *Design) RemoveFixture(id string) bool {
	for i := range d.Fixtures {
		if d.Fixtures[i].ID == id {
			d.Fixtures = append(d.Fixtures[:i], d.Fixtures[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveZone deletes the zone with the given id and clears the zone reference
// on any fixture that pointed at it. Fixtures themselves are kept.
func (d *Design) RemoveZone(id string) bool {
	for i := range d.Zones {
		if d.Zones[i].ID == id {
			d.Zones = append(d.Zones[:i], d.Zones[i+1:]...)
			for j := range d.Fixtures {
				if d.Fixtures[j].Zone == id {
					d.Fixtures[j].Zone = ""
				}
			}
			return true
		}
	}
	return false
}

// RemoveAnnotation deletes the annotation with the given id.
func (d *Design) RemoveAnnotation(id string) bool {
	for i := range d.Annotations {
		if d.Annotations[i].ID == id {
			d.Annotations = append(d.Annotations[:i], d.Annotations[i+1:]...)
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the design. History snapshots rely on clones
// being fully independent of the original.
func (d *Design) Clone() *Design {
	clone := &Design{
		Shell:       d.Shell,
		Zones:       make([]Zone, len(d.Zones)),
		Fixtures:    make([]Fixture, len(d.Fixtures)),
		Annotations: make([]Annotation, len(d.Annotations)),
	}
	copy(clone.Zones, d.Zones)
	copy(clone.Annotations, d.Annotations)
	for i, f := range d.Fixtures {
		cf := f
		if f.Properties != nil {
			cf.Properties = make(map[string]any, len(f.Properties))
			for k, v := range f.Properties {
				cf.Properties[k] = v
			}
		}
		clone.Fixtures[i] = cf
	}
	return clone
}
