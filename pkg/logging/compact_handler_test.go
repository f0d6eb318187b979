package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCompactHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Debug("edge added", "id", "e1", "count", 2, "title", "two words")

	line := buf.String()
	for _, want := range []string{"[DEBUG] ", "edge added |", "id=e1", "count=2", `title="two words"`} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}
}

func TestCompactHandlerLevelAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line should be filtered, got %q", buf.String())
	}

	log.With("store", "main").WithGroup("node").Info("updated", "id", "n1")
	line := buf.String()
	if !strings.Contains(line, "store=main") || !strings.Contains(line, "node.id=n1") {
		t.Errorf("expected accumulated attrs and group prefix, got %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		verbosity string
		verbose   int
		want      slog.Level
	}{
		{"", 0, slog.LevelInfo},
		{"", 1, slog.LevelDebug},
		{"", 3, LevelTrace},
		{"warn", 2, slog.LevelWarn},
		{"ERROR", 0, slog.LevelError},
		{"nonsense", 0, slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.verbosity, tt.verbose); got != tt.want {
			t.Errorf("ParseLevel(%q, %d) = %v, want %v", tt.verbosity, tt.verbose, got, tt.want)
		}
	}
}
