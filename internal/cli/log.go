package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
// Error values and node IDs are colored so they stand out in long crawls.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	l.SetStyles(logStyles())
	return l
}

func logStyles() *log.Styles {
	s := log.DefaultStyles()
	s.Keys["err"] = lipgloss.NewStyle().Foreground(colorRed)
	s.Values["err"] = lipgloss.NewStyle().Foreground(colorRed)
	s.Values["node"] = lipgloss.NewStyle().Foreground(colorCyan)
	s.Values["pass"] = lipgloss.NewStyle().Bold(true)
	return s
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time since progress was created and any
// extra key/value pairs.
// Example output: "14:32:01.45 INFO Crawl finished elapsed=12m3.456s edges=5120"
func (p *progress) done(msg string, keyvals ...any) {
	kv := append([]any{"elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, kv...)
}
