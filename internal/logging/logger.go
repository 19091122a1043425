// Package logging builds the logrus loggers used by the testbench.
package logging

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// DefaultLevel applies when a level name cannot be parsed.
const DefaultLevel = logrus.WarnLevel

// New returns a logger writing to w with the testbench Formatter.
func New(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&Formatter{})
	l.SetLevel(ParseLevel(level))
	return l
}

// ForTest returns a logger whose lines go through t.Log, so they only show
// up for failing tests or under -v.
func ForTest(t testing.TB, level string) *logrus.Logger {
	l := New(&testWriter{t: t}, level)
	l.SetFormatter(&Formatter{NoColor: true, DisableTimestamp: true})
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// ParseLevel is logrus.ParseLevel with a fallback to DefaultLevel.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
