// Package logging wraps charm/log with the structured events emitted while
// merging and exporting papers.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing info and above to w.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Wrap adopts an existing charm logger. A nil logger yields Discard().
func Wrap(l *log.Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return NewWithLevel(io.Discard, log.FatalLevel)
}

// LevelFor maps the CLI verbosity flags to a level. quiet wins over verbose.
func LevelFor(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// CatalogBuilt logs the outcome of a source scan.
func (l *Logger) CatalogBuilt(folder string, sources, collisions int, duration time.Duration) {
	l.Debug("source catalog built",
		"folder", folder,
		"sources", sources,
		"collisions", collisions,
		"duration", duration.Round(time.Millisecond))
}

// SourceCollision logs two sources sharing a base name.
func (l *Logger) SourceCollision(key, kept, dropped string) {
	l.Warn("duplicate source key",
		"key", key,
		"kept", kept,
		"dropped", dropped)
}

// ChapterOrdered logs the order computed for a chapter.
func (l *Logger) ChapterOrdered(file string, order int) {
	l.Debug("chapter ordered",
		"file", file,
		"order", order)
}

// CitationsResolved logs the citations rewritten in one chapter.
func (l *Logger) CitationsResolved(file string, cited int) {
	l.Debug("citations resolved",
		"file", file,
		"cited", cited)
}

// MergeCompleted logs the end of a merge.
func (l *Logger) MergeCompleted(chapters, cited int, duration time.Duration) {
	l.Info("merge completed",
		"chapters", chapters,
		"cited", cited,
		"duration", duration.Round(time.Millisecond))
}

// TemplateFallback logs a custom template that could not be used.
func (l *Logger) TemplateFallback(path string, err error) {
	l.Warn("custom template unavailable, using default",
		"path", path,
		"error", err)
}

// Rendered logs a completed render stage.
func (l *Logger) Rendered(stage string, bytes int, duration time.Duration) {
	l.Debug("rendered",
		"stage", stage,
		"bytes", bytes,
		"duration", duration.Round(time.Millisecond))
}

// Skipped logs when a file is skipped.
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
