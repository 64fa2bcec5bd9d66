// Package csvlog provides the CLI's verbose diagnostic logging. The core
// csvqsniffer package never logs — it is a pure function of its inputs — so
// this wrapper exists only for the command-line front end.
package csvlog

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New builds a logrus.Logger that writes to stderr. It carries no request ID
// itself; WithRequestID adds one. Level is Debug when verbose is set, Warn
// otherwise, matching the CLI's -v/--verbose flag.
func New(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   false,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}

	return l
}

// WithRequestID returns an entry pre-populated with a fresh request ID,
// scoping every field logged through it to one CLI invocation.
func WithRequestID(l *logrus.Logger) *logrus.Entry {
	return l.WithField("request_id", uuid.NewString())
}

// Discard returns a logger that drops everything, used by tests and by
// library callers that embed the CLI's command tree without wanting output.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
