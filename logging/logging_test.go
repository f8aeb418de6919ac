package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "photo imported",
		Data:    logrus.Fields{"component": "media", "uri": "file:///a.jpg"},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	s := string(out)
	if !strings.Contains(s, "2026-03-14 10:30:00") {
		t.Errorf("output missing timestamp: %q", s)
	}
	if !strings.Contains(s, "[INFO]") {
		t.Errorf("output missing level: %q", s)
	}
	if !strings.Contains(s, "photo imported") {
		t.Errorf("output missing message: %q", s)
	}
	if !strings.Contains(s, "uri=file:///a.jpg") {
		t.Errorf("output missing field: %q", s)
	}
}

func TestTextFormatterWarnShortened(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Level:   logrus.WarnLevel,
		Message: "slow send",
		Data:    logrus.Fields{},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), "[WARN]") {
		t.Errorf("warning level should render as WARN: %q", string(out))
	}
	if strings.Contains(string(out), "2026") {
		t.Errorf("timestamp should be disabled: %q", string(out))
	}
}

func TestNewLoggerSingleton(t *testing.T) {
	t.Setenv("MIRA_HOME", t.TempDir())

	a := NewLogger("test-component")
	b := NewLogger("test-component")
	if a != b {
		t.Error("NewLogger should return the same entry per component")
	}
	if a.Data["component"] != "test-component" {
		t.Errorf("component field = %v, want test-component", a.Data["component"])
	}
}

func TestGlobalWriterSwap(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	defer SetGlobalOutput(os.Stderr)

	if _, err := GetGlobalOutput().Write([]byte("hello")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != "hello" {
		t.Errorf("global writer did not route output, got %q", buf.String())
	}
}
