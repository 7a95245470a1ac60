// Package terminal hosts the fitplan editor in a tcell screen: it translates
// terminal key and mouse events into editor input, paints the current plan,
// and autosaves committed changes.
package terminal

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"fitplan/design"
	"fitplan/editor"
	"fitplan/geometry"
	"fitplan/persist"
)

// cellAspect compensates for terminal cells being roughly twice as tall as
// they are wide. Rows are scaled by this factor before they enter the
// transform pipeline so a square footprint paints square-ish.
const cellAspect = 2.0

// Host runs one editing session against one named document.
type Host struct {
	screen tcell.Screen
	ed     *editor.Editor
	in     *editor.Input
	store  persist.Store
	name   string
	logger *log.Logger

	keymap    editor.Keymap
	autosave  bool
	savedPast int // history depth at last save

	leftDown bool
	message  string
}

// Options configures a Host.
type Options struct {
	Store    persist.Store
	DocName  string
	Autosave bool
	Keymap   editor.Keymap
	Logger   *log.Logger
}

// New wires a host around an editor. The screen is created in Run.
func New(ed *editor.Editor, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &Host{
		ed:       ed,
		in:       editor.NewInput(ed),
		store:    opts.Store,
		name:     opts.DocName,
		logger:   logger,
		autosave: opts.Autosave,
		keymap:   opts.Keymap,
	}
	if h.keymap == nil {
		h.keymap = editor.DefaultKeymap()
	}
	return h
}

// Run owns the terminal until the user quits. It restores the screen on exit.
func Run(ed *editor.Editor, opts Options) error {
	h := New(ed, opts)
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	h.screen = screen
	h.measure()
	return h.loop()
}

func (h *Host) loop() error {
	for {
		h.draw()
		h.screen.Show()

		switch ev := h.screen.PollEvent().(type) {
		case *tcell.EventResize:
			h.screen.Sync()
			h.measure()
		case *tcell.EventKey:
			if quit := h.handleKey(ev); quit {
				return h.saveNow()
			}
		case *tcell.EventMouse:
			h.handleMouse(ev)
		}
		h.autosaveIfDirty()
	}
}

// measure feeds the current screen geometry into the transform pipeline. Two
// rows are reserved for the status area.
func (h *Host) measure() {
	w, height := h.screen.Size()
	shell := h.ed.Design().Shell
	h.in.SetSurface(editor.Surface{
		DeviceW: float64(w),
		DeviceH: float64(height-2) * cellAspect,
		ViewW:   shell.LengthFt*editor.PixelsPerFoot + 2*editor.PaddingWorld,
		ViewH:   shell.WidthFt*editor.PixelsPerFoot + 2*editor.PaddingWorld,
	})
}

func (h *Host) handleKey(ev *tcell.EventKey) (quit bool) {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() == tcell.KeyCtrlS {
		if err := h.saveNow(); err != nil {
			h.message = "save failed: " + err.Error()
		} else {
			h.message = "saved " + h.name
		}
		return false
	}
	name := keyName(ev)
	if name == "q" {
		return true
	}
	if name != "" && h.ed.Key(h.keymap, name) {
		h.message = ""
	}
	return false
}

// keyName maps a tcell key event onto the keymap's key-name vocabulary.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return "delete"
	case tcell.KeyCtrlZ:
		return "ctrl+z"
	case tcell.KeyCtrlY:
		return "ctrl+y"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	px, py := float64(x), float64(y)*cellAspect
	mods := editor.Modifiers{Append: ev.Modifiers()&tcell.ModShift != 0}
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		h.in.Zoom(px, py, 1.1)
	case buttons&tcell.WheelDown != 0:
		h.in.Zoom(px, py, 1/1.1)
	case buttons&tcell.Button1 != 0:
		if !h.leftDown {
			h.leftDown = true
			h.in.PointerDown(px, py, mods)
		} else {
			h.in.PointerMove(px, py)
		}
	default:
		if h.leftDown {
			h.leftDown = false
			h.in.PointerUp(px, py)
		}
	}
}

func (h *Host) autosaveIfDirty() {
	if !h.autosave || h.store == nil {
		return
	}
	past, _ := h.ed.HistoryDepths()
	if past == h.savedPast {
		return
	}
	if err := h.saveNow(); err != nil {
		h.logger.Error("autosave failed", "doc", h.name, "err", err)
		h.message = "autosave failed: " + err.Error()
	}
}

func (h *Host) saveNow() error {
	if h.store == nil {
		return nil
	}
	if err := h.store.Save(h.name, h.ed.Design()); err != nil {
		return err
	}
	h.savedPast, _ = h.ed.HistoryDepths()
	return nil
}

// Drawing

var (
	styleDefault   = tcell.StyleDefault
	styleShell     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleZone      = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleFixture   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleSelected  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCollision = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleGuide     = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleMarquee   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleMeasure   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus    = tcell.StyleDefault.Reverse(true)
)

func (h *Host) draw() {
	h.screen.Clear()
	d := h.ed.Design()
	m := h.in.Mapper()

	shellRect := geometry.Rect{Width: d.Shell.LengthFt, Height: d.Shell.WidthFt}
	h.drawRect(m, shellRect, styleShell)

	for _, z := range d.Zones {
		r := geometry.Rect{X: z.XFt, Y: z.YFt, Width: z.LengthFt, Height: z.WidthFt}
		style := styleZone
		if z.ID == h.ed.SelectedZoneID() {
			style = styleSelected
		}
		h.drawRect(m, r, style)
		h.drawLabel(m, z.XFt+0.3, z.YFt+0.3, z.Name, style)
	}

	overlapped := make(map[string]bool)
	for _, o := range h.ed.Collisions() {
		overlapped[o.A] = true
		overlapped[o.B] = true
	}
	selected := make(map[string]bool)
	for _, id := range h.ed.SelectedIDs() {
		selected[id] = true
	}

	for _, f := range d.Fixtures {
		r, ok := h.fixtureRect(f.ID)
		if !ok {
			continue
		}
		style := styleFixture
		if overlapped[f.ID] {
			style = styleCollision
		}
		if selected[f.ID] {
			style = styleSelected
		}
		h.drawRect(m, r, style)
		h.drawLabel(m, r.X+0.2, r.Y+0.2, f.CatalogKey, style)
	}

	for _, g := range h.ed.AlignmentGuides() {
		h.drawGuide(m, g)
	}
	if mq := h.ed.Marquee(); mq != nil {
		h.drawRect(m, geometry.RectBetween(mq.Origin, mq.Current), styleMarquee)
	}
	if w := h.ed.WallDraw(); w != nil {
		h.drawSegment(m, w.Start.X, w.Start.Y, w.Current.X, w.Current.Y, styleSelected)
	}
	for _, p := range h.ed.MeasurePoints() {
		h.drawMark(m, p.X, p.Y, 'x', styleMeasure)
	}
	for _, an := range d.Annotations {
		style := styleFixture
		if an.ID == h.ed.SelectedAnnotationID() {
			style = styleSelected
		}
		h.drawMark(m, an.AnchorFt.X, an.AnchorFt.Y, '*', style)
		h.drawLabel(m, an.LabelFt.X, an.LabelFt.Y, an.Text, style)
	}
	if id := h.ed.PrimaryID(); id != "" {
		if hp, ok := h.ed.RotationHandlePoint(id); ok {
			h.drawMark(m, hp.X, hp.Y, 'o', styleSelected)
		}
	}

	h.drawStatus()
}

// fixtureRect resolves a fixture's footprint, preferring the live drag
// preview when that fixture is mid-drag.
func (h *Host) fixtureRect(id string) (geometry.Rect, bool) {
	if drag := h.ed.Drag(); drag != nil && drag.ID == id {
		if r := h.ed.DragPreviewRect(); r != nil {
			return *r, true
		}
	}
	f := h.ed.Design().Fixture(id)
	if f == nil {
		return geometry.Rect{}, false
	}
	return h.ed.FixtureRect(*f)
}

// cell converts a point in feet to a screen cell.
func (h *Host) cell(m editor.Mapper, x, y float64) (col, row int, ok bool) {
	px, py, ok := m.FeetToDevice(design.Point{X: x, Y: y})
	if !ok {
		return 0, 0, false
	}
	return int(px + 0.5), int(py/cellAspect + 0.5), true
}

func (h *Host) drawRect(m editor.Mapper, r geometry.Rect, style tcell.Style) {
	x0, y0, ok := h.cell(m, r.X, r.Y)
	if !ok {
		return
	}
	x1, y1, ok := h.cell(m, r.MaxX(), r.MaxY())
	if !ok {
		return
	}
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for x := x0 + 1; x < x1; x++ {
		h.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		h.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		h.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		h.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	h.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	h.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	h.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	h.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

func (h *Host) drawGuide(m editor.Mapper, g geometry.Guide) {
	if g.Orientation == geometry.GuideVertical {
		h.drawSegment(m, g.Position, g.From.Y, g.Position, g.To.Y, styleGuide)
	} else {
		h.drawSegment(m, g.From.X, g.Position, g.To.X, g.Position, styleGuide)
	}
}

// drawSegment paints an axis-aligned or roughly diagonal line cell by cell.
func (h *Host) drawSegment(m editor.Mapper, x0f, y0f, x1f, y1f float64, style tcell.Style) {
	x0, y0, ok := h.cell(m, x0f, y0f)
	if !ok {
		return
	}
	x1, y1, ok := h.cell(m, x1f, y1f)
	if !ok {
		return
	}
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		h.screen.SetContent(x0, y0, '+', nil, style)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		ch := '+'
		if dy == 0 {
			ch = tcell.RuneHLine
		} else if dx == 0 {
			ch = tcell.RuneVLine
		}
		h.screen.SetContent(x, y, ch, nil, style)
	}
}

func (h *Host) drawMark(m editor.Mapper, x, y float64, ch rune, style tcell.Style) {
	col, row, ok := h.cell(m, x, y)
	if !ok {
		return
	}
	h.screen.SetContent(col, row, ch, nil, style)
}

func (h *Host) drawLabel(m editor.Mapper, x, y float64, text string, style tcell.Style) {
	col, row, ok := h.cell(m, x, y)
	if !ok {
		return
	}
	w, _ := h.screen.Size()
	for i, r := range text {
		if col+i >= w {
			break
		}
		h.screen.SetContent(col+i, row, r, nil, style)
	}
}

func (h *Host) drawStatus() {
	w, height := h.screen.Size()
	row := height - 2
	past, future := h.ed.HistoryDepths()
	status := fmt.Sprintf("[ %s ] tool:%s sel:%d undo:%d redo:%d snap:%.2gft collisions:%d",
		h.name, h.ed.Tool(), len(h.ed.SelectedIDs()), past, future,
		h.ed.SnapIncrement(), len(h.ed.Collisions()))
	if pts := h.ed.MeasurePoints(); len(pts) == 2 {
		status += fmt.Sprintf(" measure:%.2fft", geometry.Distance(pts[0], pts[1]))
	}
	h.putLine(row, status, styleStatus, w)

	help := "s/p/w/m/a tools  r rotate  x delete  u/^Z undo  ^Y redo  +/- zoom  ^S save  q quit"
	if h.message != "" {
		help = h.message
	}
	h.putLine(row+1, help, styleDefault, w)
}

func (h *Host) putLine(row int, text string, style tcell.Style, width int) {
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		h.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		h.screen.SetContent(col, row, ' ', nil, style)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
