package editor

import "github.com/charmbracelet/log"

// Observer is the optional debug side channel: the reducer reports commits,
// rejections and tool changes through it. A nil observer costs nothing.
type Observer interface {
	OnEvent(kind, msg string, data map[string]any)
}

// LogObserver adapts a charmbracelet logger to the Observer port.
type LogObserver struct {
	Logger *log.Logger
}

// NewLogObserver wraps a logger; a nil logger uses the package default.
func NewLogObserver(l *log.Logger) *LogObserver {
	if l == nil {
		l = log.Default()
	}
	return &LogObserver{Logger: l}
}

// OnEvent implements Observer.
func (o *LogObserver) OnEvent(kind, msg string, data map[string]any) {
	args := make([]any, 0, len(data)*2+2)
	args = append(args, "kind", kind)
	for k, v := range data {
		args = append(args, k, v)
	}
	o.Logger.Debug(msg, args...)
}
