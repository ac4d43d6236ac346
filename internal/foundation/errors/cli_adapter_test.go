package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("missing key").Build(), expected: 2},
		{name: "config", err: ConfigError("bad yaml").Build(), expected: 7},
		{name: "database", err: DatabaseError("ping failed").Build(), expected: 8},
		{name: "sphinx", err: SphinxError("render failed").Build(), expected: 11},
		{name: "wrapped filesystem", err: fmt.Errorf("prepare: %w", FileSystemError("mkdir").Build()), expected: 11},
		{name: "runtime", err: RuntimeError("hostname").Build(), expected: 12},
		{name: "unclassified error", err: errors.New("unknown error"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	internal := InternalError("nil runner").Build()
	if got := quiet.FormatError(internal); !strings.Contains(got, "use -v") {
		t.Errorf("expected hint for internal error, got %q", got)
	}
	if got := verbose.FormatError(internal); !strings.Contains(got, "nil runner") {
		t.Errorf("expected full message in verbose mode, got %q", got)
	}
	if got := quiet.FormatError(ConfigError("bad yaml").Build()); !strings.Contains(got, "bad yaml") {
		t.Errorf("expected config message to be shown, got %q", got)
	}
	if got := quiet.FormatError(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("bad yaml").WithContext("path", "course.yaml").Build())

	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
	if !strings.Contains(logs.String(), "path=course.yaml") {
		t.Errorf("expected context in log output, got %q", logs.String())
	}
	if !strings.Contains(out.String(), "bad yaml") {
		t.Errorf("expected message on stderr, got %q", out.String())
	}
}
