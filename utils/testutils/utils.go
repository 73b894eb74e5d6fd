package testutils

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/harbour-enterprises/pageflow/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// LogCapture redirects the package loggers to a buffer for the duration
// of a test.
type LogCapture struct {
	buf      bytes.Buffer
	restores []func()
}

// CaptureLogs swaps the output of the warning logger (and silences the
// progress logger). Callers should defer AssertNoLogs or Restore.
func CaptureLogs() *LogCapture {
	c := &LogCapture{}

	wOut := logger.WarningLogger.Writer()
	pOut := logger.ProgressLogger.Writer()
	logger.WarningLogger.SetOutput(&c.buf)
	logger.ProgressLogger.SetOutput(io.Discard)
	c.restores = append(c.restores, func() {
		logger.WarningLogger.SetOutput(wOut)
		logger.ProgressLogger.SetOutput(pOut)
	})
	return c
}

func (c *LogCapture) Restore() {
	for _, fn := range c.restores {
		fn()
	}
	c.restores = nil
}

// Logs returns the captured warning lines.
func (c *LogCapture) Logs() []string {
	s := strings.TrimSpace(c.buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// AssertNoLogs restores the loggers and fails the test if any warning
// was emitted.
func (c *LogCapture) AssertNoLogs(t *testing.T) {
	t.Helper()
	c.Restore()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got (%d):\n%s", len(logs), strings.Join(logs, "\n"))
	}
}
