// Package logging configures structured logging for the POS host.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. level is one of
// debug|info|warn|error (case-insensitive); unknown levels fall back to
// info. Output is JSON, one entry per line.
func Setup(level string) {
	SetupWithOutput(level, os.Stdout)
}

// SetupWithOutput is Setup with an explicit destination.
func SetupWithOutput(level string, out io.Writer) {
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// WithComponent returns an entry tagged with the originating component.
func WithComponent(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
