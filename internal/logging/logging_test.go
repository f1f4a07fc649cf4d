package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, test := range tests {
		got, err := ParseLevel(test.input)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewHandler_JSONFormat(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(newHandler(&buffer, "json", slog.LevelInfo))

	logger.Info("toggled routine", "routine_id", "r1")
	logger.Debug("hidden")

	output := buffer.String()
	if !strings.Contains(output, `"routine_id":"r1"`) {
		t.Errorf("expected JSON attribute in output, got %q", output)
	}
	if strings.Contains(output, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
}
