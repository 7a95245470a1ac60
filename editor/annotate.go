package editor

import "fitplan/design"

// Annotation drag controller. Anchor and label move independently; the
// screen-to-feet conversion already happened upstream at the current zoom, so
// this controller only deals in feet.

func (e *Editor) startAnnotationDrag(a StartAnnotationDrag) {
	if e.hasTransient() {
		return
	}
	an := e.design.Annotation(a.ID)
	if an == nil {
		return
	}
	origin := an.AnchorFt
	if a.Part == AnnotationLabel {
		origin = an.LabelFt
	}
	e.annotationDrag = &AnnotationDrag{
		ID:      a.ID,
		Part:    a.Part,
		Start:   a.At,
		Current: a.At,
		Origin:  origin,
	}
}

func (e *Editor) updateAnnotationDrag(at design.Point) {
	if e.annotationDrag == nil {
		return
	}
	e.annotationDrag.Current = at
}

func (e *Editor) endAnnotationDrag(at design.Point) {
	d := e.annotationDrag
	if d == nil {
		return
	}
	e.annotationDrag = nil
	an := e.design.Annotation(d.ID)
	if an == nil {
		return
	}
	next := d.Origin.Add(at.X-d.Start.X, at.Y-d.Start.Y)
	cur := an.AnchorFt
	if d.Part == AnnotationLabel {
		cur = an.LabelFt
	}
	if next == cur {
		return
	}
	e.commit("move annotation", func(doc *design.Design) bool {
		target := doc.Annotation(d.ID)
		if d.Part == AnnotationLabel {
			target.LabelFt = next
		} else {
			target.AnchorFt = next
		}
		return true
	})
}
