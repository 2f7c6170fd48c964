package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level string) (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewWithWriter(level, &buf)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" warning ", WARN},
		{"warn", WARN},
		{"error", ERROR},
		{"verbose", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAppLogger_Format(t *testing.T) {
	l, buf := newTestLogger("debug")

	l.Info("tool executed", "tool", "Key Points", "pages", 3)

	want := "[2024-01-02 03:04:05] INFO: tool executed tool=Key Points pages=3\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestAppLogger_ErrorField(t *testing.T) {
	l, buf := newTestLogger("info")

	l.Error("extraction failed", errors.New("boom"), "file", "a.pdf")
	if !strings.Contains(buf.String(), "ERROR: extraction failed error=boom file=a.pdf") {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	l.Error("no cause", nil)
	if strings.Contains(buf.String(), "error=") {
		t.Fatalf("expected no error field for nil error, got %q", buf.String())
	}
}

func TestAppLogger_LevelFiltering(t *testing.T) {
	l, buf := newTestLogger("warn")

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug and info to be filtered, got %q", buf.String())
	}

	l.Warn("shown")
	l.Error("shown too", nil)
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", got, buf.String())
	}
}

func TestAppLogger_OddFields(t *testing.T) {
	l, buf := newTestLogger("info")

	l.Info("odd", "key", "value", "dangling")
	if strings.Contains(buf.String(), "dangling") {
		t.Fatalf("expected dangling key to be dropped, got %q", buf.String())
	}
}
