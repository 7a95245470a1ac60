package editor

import (
	"math"

	"fitplan/design"
)

// PixelsPerFoot is the base design-space scale: how many world units one foot
// occupies before any viewport zoom.
const PixelsPerFoot = 24.0

// PaddingWorld is the fixed margin, in world units, between the world origin
// and the shell's (0,0) corner.
const PaddingWorld = 16.0

// Zoom limits for the viewport scale.
const (
	MinZoom = 0.25
	MaxZoom = 4.0
)

// Surface describes the measured geometry of the drawing surface: the
// rendered size of its bounding box in device pixels and the size of its
// logical coordinate space. Everything the pipeline needs is derivable from
// these four numbers, so any input backend (native pointer events, a gesture
// wrapper, a terminal cell grid) that can report a bounding box works the
// same way.
type Surface struct {
	DeviceW, DeviceH float64 // rendered bounding-box size, device pixels
	ViewW, ViewH     float64 // logical coordinate space size
}

// Measurable reports whether the surface has been laid out. Conversions on an
// unmeasurable surface fail rather than guessing.
func (s Surface) Measurable() bool {
	return s.DeviceW > 0 && s.DeviceH > 0 && s.ViewW > 0 && s.ViewH > 0
}

// fit returns the uniform letterbox transform from viewbox to device space:
// content is scaled by min(scaleX, scaleY) and centered.
func (s Surface) fit() (scale, offX, offY float64) {
	scale = math.Min(s.DeviceW/s.ViewW, s.DeviceH/s.ViewH)
	offX = (s.DeviceW - s.ViewW*scale) / 2
	offY = (s.DeviceH - s.ViewH*scale) / 2
	return scale, offX, offY
}

// DeviceToViewbox converts a device pixel position to logical viewbox units,
// undoing aspect-ratio letterboxing. Returns ok=false when the surface is not
// measurable; callers abort the interaction step silently.
func (s Surface) DeviceToViewbox(px, py float64) (vx, vy float64, ok bool) {
	if !s.Measurable() {
		return 0, 0, false
	}
	scale, offX, offY := s.fit()
	return (px - offX) / scale, (py - offY) / scale, true
}

// ViewboxToDevice is the inverse of DeviceToViewbox.
func (s Surface) ViewboxToDevice(vx, vy float64) (px, py float64, ok bool) {
	if !s.Measurable() {
		return 0, 0, false
	}
	scale, offX, offY := s.fit()
	return vx*scale + offX, vy*scale + offY, true
}

// Viewport is the user-controlled pan/zoom transform applied uniformly to all
// design-space rendering. Viewport changes are never undoable.
type Viewport struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultViewport returns the identity viewport.
func DefaultViewport() Viewport {
	return Viewport{Scale: 1}
}

// ViewboxToWorld applies the inverse of the pan/zoom transform.
func (v Viewport) ViewboxToWorld(vx, vy float64) (wx, wy float64) {
	return (vx - v.OffsetX) / v.Scale, (vy - v.OffsetY) / v.Scale
}

// WorldToViewbox applies the pan/zoom transform.
func (v Viewport) WorldToViewbox(wx, wy float64) (vx, vy float64) {
	return wx*v.Scale + v.OffsetX, wy*v.Scale + v.OffsetY
}

// PanBy translates the viewport by a viewbox-space delta.
func (v Viewport) PanBy(dx, dy float64) Viewport {
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}

// ZoomAt multiplies the scale by factor, clamped to [MinZoom, MaxZoom], while
// keeping the world point under the given viewbox position stationary.
func (v Viewport) ZoomAt(vx, vy, factor float64) Viewport {
	next := v.Scale * factor
	next = math.Max(MinZoom, math.Min(MaxZoom, next))

	wx, wy := v.ViewboxToWorld(vx, vy)
	v.Scale = next
	v.OffsetX = vx - wx*next
	v.OffsetY = vy - wy*next
	return v
}

// WorldToFeet converts pan/zoom-corrected world units to design feet.
func WorldToFeet(wx, wy float64) design.Point {
	return design.Point{
		X: (wx - PaddingWorld) / PixelsPerFoot,
		Y: (wy - PaddingWorld) / PixelsPerFoot,
	}
}

// FeetToWorld is the inverse of WorldToFeet.
func FeetToWorld(p design.Point) (wx, wy float64) {
	return p.X*PixelsPerFoot + PaddingWorld, p.Y*PixelsPerFoot + PaddingWorld
}

// Mapper bundles the full device↔feet chain for one surface and viewport.
// Snapping is deliberately not part of the chain; interactions that want it
// apply geometry.Snap to the result themselves.
type Mapper struct {
	Surface  Surface
	Viewport Viewport
}

// DeviceToFeet runs the full forward chain. ok=false mirrors DeviceToViewbox.
func (m Mapper) DeviceToFeet(px, py float64) (design.Point, bool) {
	vx, vy, ok := m.Surface.DeviceToViewbox(px, py)
	if !ok {
		return design.Point{}, false
	}
	wx, wy := m.Viewport.ViewboxToWorld(vx, vy)
	return WorldToFeet(wx, wy), true
}

// FeetToDevice runs the full inverse chain.
func (m Mapper) FeetToDevice(p design.Point) (px, py float64, ok bool) {
	wx, wy := FeetToWorld(p)
	vx, vy := m.Viewport.WorldToViewbox(wx, wy)
	return m.Surface.ViewboxToDevice(vx, vy)
}

// FeetToViewbox maps a design point into viewbox units, for renderers that
// draw in the logical coordinate space.
func (m Mapper) FeetToViewbox(p design.Point) (vx, vy float64) {
	wx, wy := FeetToWorld(p)
	return m.Viewport.WorldToViewbox(wx, wy)
}
