package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newCaptureLogger() (*LogrusLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrus(base), buf
}

func TestLogrusLoggerEmitsFields(t *testing.T) {
	log, buf := newCaptureLogger()

	log.Info("skipping locale", Field{Key: "locale", Value: "tlh"})

	line := buf.String()
	if !strings.Contains(line, "skipping locale") {
		t.Fatalf("expected message in output, got %q", line)
	}
	if !strings.Contains(line, "locale=tlh") {
		t.Fatalf("expected locale field in output, got %q", line)
	}
}

func TestLogrusLoggerWithCarriesFields(t *testing.T) {
	log, buf := newCaptureLogger()

	scoped := log.With(Field{Key: "run_id", Value: "abc"})
	scoped.Warn("bundle missing")

	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Fatalf("expected run_id field, got %q", buf.String())
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	var log Logger = &Nop{}
	log = log.With(Field{Key: "k", Value: "v"})
	log.Debug("ignored")
	log.Error("ignored")
}
