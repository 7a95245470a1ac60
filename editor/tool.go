package editor

// Tool is the active editing tool. Exactly one tool is active at a time;
// switching tools cancels any in-flight transient interaction without
// committing it.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPan
	ToolWall
	ToolMeasure
	ToolAnnotate
)

// String returns the tool name for display.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "SELECT"
	case ToolPan:
		return "PAN"
	case ToolWall:
		return "WALL"
	case ToolMeasure:
		return "MEASURE"
	case ToolAnnotate:
		return "ANNOTATE"
	default:
		return "UNKNOWN"
	}
}
