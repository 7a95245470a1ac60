package editor

import (
	"fitplan/design"
	"fitplan/geometry"
)

// Marquee controller. The rubber band itself never touches history; END
// replaces the fixture selection with everything whose bounding rectangle
// intersects the spanned rectangle, or clears it when nothing does.

func (e *Editor) startMarquee(at design.Point) {
	if e.hasTransient() {
		return
	}
	e.marquee = &Marquee{Origin: at, Current: at}
}

func (e *Editor) updateMarquee(at design.Point) {
	if e.marquee == nil {
		return
	}
	e.marquee.Current = at
}

func (e *Editor) endMarquee(at design.Point) {
	m := e.marquee
	if m == nil {
		return
	}
	e.marquee = nil

	band := geometry.RectBetween(m.Origin, at)
	var hits []string
	for _, f := range e.design.Fixtures {
		item, ok := e.catalog.Lookup(f.CatalogKey)
		if !ok {
			continue
		}
		if geometry.FixtureRect(f, item).Intersects(band) {
			hits = append(hits, f.ID)
		}
	}

	e.selectedZoneID = ""
	e.selectedAnnotationID = ""
	e.selectedIDs = hits
	e.primaryID = ""
	if len(hits) > 0 {
		e.primaryID = hits[len(hits)-1]
	}
}

// MarqueeRect returns the rectangle currently spanned by the marquee, or nil.
func (e *Editor) MarqueeRect() *geometry.Rect {
	if e.marquee == nil {
		return nil
	}
	r := geometry.RectBetween(e.marquee.Origin, e.marquee.Current)
	return &r
}
