package common

import (
	"testing"

	"github.com/sirupsen/logrus"
)

// testLogWriter forwards log lines to testing.T.Log so that they only show
// up for failed or verbose tests.
type testLogWriter struct {
	t testing.TB
}

func (w *testLogWriter) Write(d []byte) (int, error) {
	n := len(d)
	if n > 0 && d[n-1] == '\n' {
		d = d[:n-1]
	}
	w.t.Log(string(d))
	return n, nil
}

// NewTestLogger returns a debug-level logger writing to t.
func NewTestLogger(t testing.TB) *logrus.Logger {
	logger := logrus.New()
	logger.Out = &testLogWriter{t: t}
	logger.Level = logrus.DebugLevel
	return logger
}

// NewTestEntry returns an entry of NewTestLogger tagged with prefix, the way
// components tag their own loggers.
func NewTestEntry(t testing.TB, prefix string) *logrus.Entry {
	return NewTestLogger(t).WithField("prefix", prefix)
}
