package logger

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf})
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newTestLogger(WARN)

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)
	l.Errorf("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO message leaked through WARN level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") || !strings.Contains(out, "[ERROR] shown 3") {
		t.Errorf("Expected WARN and ERROR lines, got %q", out)
	}
}

func TestFatalExits(t *testing.T) {
	l, buf := newTestLogger(DEBUG)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("boom")
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "[FATAL] boom") {
		t.Errorf("Expected fatal line, got %q", buf.String())
	}
}

func TestWithPrefix(t *testing.T) {
	l, buf := newTestLogger(INFO)
	httpLog := l.WithPrefix("http")
	httpLog.Infof("GET /health")

	if !strings.Contains(buf.String(), "[INFO] [http] GET /health") {
		t.Errorf("Expected prefixed line, got %q", buf.String())
	}

	// The prefixed logger follows level changes on its parent
	buf.Reset()
	l.SetLevel(WARN)
	httpLog.Infof("hidden")
	httpLog.WithPrefix("cors").Warnf("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("INFO leaked after parent switched to WARN: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[WARN] [http cors] shown") {
		t.Errorf("Expected nested prefix, got %q", buf.String())
	}
}

func TestColorAndTime(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DEBUG, Colorize: true, TimeFormat: "2006", Output: &buf})
	l.Errorf("x")

	out := buf.String()
	if !strings.Contains(out, "\033[31m[ERROR]\033[0m x") {
		t.Errorf("Expected a red ERROR tag, got %q", out)
	}
	if len(out) < 5 || out[4] != ' ' {
		t.Errorf("Expected a leading year, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level LogLevel
		ok    bool
	}{
		{"debug", DEBUG, true},
		{" Warning ", WARN, true},
		{"ERROR", ERROR, true},
		{"", INFO, false},
		{"verbose", INFO, false},
	}
	for _, tt := range tests {
		level, ok := ParseLevel(tt.in)
		if level != tt.level || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; expected %v, %v", tt.in, level, ok, tt.level, tt.ok)
		}
	}
}
