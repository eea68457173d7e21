// Package logger provides component-tagged structured logging on top of
// logrus.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config controls logger output.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// Logger is a thin wrapper around a logrus entry carrying a component field.
type Logger struct {
	*logrus.Entry
}

// New creates a logger from config for the given component.
func New(cfg Config, component string) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Logger{Entry: base.WithField("component", component)}
}

// NewDefault creates an info-level text logger for the given component.
func NewDefault(component string) *Logger {
	return New(Config{Level: "info", Format: "text"}, component)
}

// WithError returns a logger with the error attached as a field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Entry: l.Entry.WithError(err)}
}

// WithField returns a logger with an extra field attached.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Entry: l.Entry.WithField(key, value)}
}
