package editor

import "fitplan/design"

// Command is a logical editor command. Key bindings map key names onto
// commands so the binding table is swappable configuration and nothing
// downstream cares which physical key fired.
type Command string

const (
	CmdUndo            Command = "undo"
	CmdRedo            Command = "redo"
	CmdDeleteSelection Command = "delete-selection"
	CmdNudgeUp         Command = "nudge-up"
	CmdNudgeDown       Command = "nudge-down"
	CmdNudgeLeft       Command = "nudge-left"
	CmdNudgeRight      Command = "nudge-right"
	CmdRotate          Command = "rotate"
	CmdEscape          Command = "escape"
	CmdToolSelect      Command = "tool-select"
	CmdToolPan         Command = "tool-pan"
	CmdToolWall        Command = "tool-wall"
	CmdToolMeasure     Command = "tool-measure"
	CmdToolAnnotate    Command = "tool-annotate"
	CmdZoomIn          Command = "zoom-in"
	CmdZoomOut         Command = "zoom-out"
)

// Keymap resolves key names (as reported by the input backend, e.g. "z",
// "ctrl+z", "up", "delete") to commands.
type Keymap map[string]Command

// DefaultKeymap returns the stock binding table.
func DefaultKeymap() Keymap {
	return Keymap{
		"ctrl+z": CmdUndo,
		"u":      CmdUndo,
		"ctrl+y": CmdRedo,
		"U":      CmdRedo,
		"delete": CmdDeleteSelection,
		"x":      CmdDeleteSelection,
		"up":     CmdNudgeUp,
		"down":   CmdNudgeDown,
		"left":   CmdNudgeLeft,
		"right":  CmdNudgeRight,
		"r":      CmdRotate,
		"escape": CmdEscape,
		"s":      CmdToolSelect,
		"p":      CmdToolPan,
		"w":      CmdToolWall,
		"m":      CmdToolMeasure,
		"a":      CmdToolAnnotate,
		"+":      CmdZoomIn,
		"=":      CmdZoomIn,
		"-":      CmdZoomOut,
	}
}

// Merge overlays other on top of the keymap, returning a new table.
func (k Keymap) Merge(other map[string]Command) Keymap {
	merged := make(Keymap, len(k)+len(other))
	for key, cmd := range k {
		merged[key] = cmd
	}
	for key, cmd := range other {
		merged[key] = cmd
	}
	return merged
}

// Key dispatches the command bound to a key name. Unbound keys are ignored;
// it reports whether the key was handled.
func (e *Editor) Key(k Keymap, name string) bool {
	cmd, ok := k[name]
	if !ok {
		return false
	}
	e.Exec(cmd)
	return true
}

// Exec runs a logical command against the editor.
func (e *Editor) Exec(cmd Command) {
	switch cmd {
	case CmdUndo:
		e.Dispatch(Undo{})
	case CmdRedo:
		e.Dispatch(Redo{})
	case CmdDeleteSelection:
		e.Dispatch(RemoveSelection{})
	case CmdNudgeUp:
		e.Dispatch(NudgeSelection{DY: -1})
	case CmdNudgeDown:
		e.Dispatch(NudgeSelection{DY: 1})
	case CmdNudgeLeft:
		e.Dispatch(NudgeSelection{DX: -1})
	case CmdNudgeRight:
		e.Dispatch(NudgeSelection{DX: 1})
	case CmdRotate:
		if id := e.PrimaryID(); id != "" {
			if f := e.design.Fixture(id); f != nil {
				e.Dispatch(UpdateFixtureRotation{ID: id, RotationDeg: f.RotationDeg + 90})
			}
		}
	case CmdEscape:
		e.Dispatch(Escape{})
	case CmdToolSelect:
		e.Dispatch(SetTool{Tool: ToolSelect})
	case CmdToolPan:
		e.Dispatch(SetTool{Tool: ToolPan})
	case CmdToolWall:
		e.Dispatch(SetTool{Tool: ToolWall})
	case CmdToolMeasure:
		e.Dispatch(SetTool{Tool: ToolMeasure})
	case CmdToolAnnotate:
		e.Dispatch(SetTool{Tool: ToolAnnotate})
	case CmdZoomIn:
		e.zoomCentered(1.2)
	case CmdZoomOut:
		e.zoomCentered(1 / 1.2)
	}
}

// zoomCentered zooms around the middle of the shell, for keyboard zoom where
// there is no cursor position to anchor on.
func (e *Editor) zoomCentered(factor float64) {
	center := design.Point{X: e.design.Shell.LengthFt / 2, Y: e.design.Shell.WidthFt / 2}
	wx, wy := FeetToWorld(center)
	vx, vy := e.viewport.WorldToViewbox(wx, wy)
	e.Dispatch(ZoomViewport{At: design.Point{X: vx, Y: vy}, Factor: factor})
}
