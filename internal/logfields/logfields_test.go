package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Course", KeyCourse, "JS4Python", Course("JS4Python")},
		{"Stage", KeyStage, "render", Stage("render")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Host", KeyHost, "rsbuilder", Host("rsbuilder")},
		{"MasterURL", KeyMasterURL, "http://127.0.0.1:8000", MasterURL("http://127.0.0.1:8000")},
		{"Version", KeyVersion, "6.3.1", Version("6.3.1")},
		{"Commit", KeyCommit, "abc1234", Commit("abc1234")},
		{"Outcome", KeyOutcome, "success", Outcome("success")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestErrorAttr(t *testing.T) {
	if got := Error(nil); got.Key != KeyError || got.Value.String() != "" {
		t.Fatalf("unexpected nil error attr: %v", got)
	}
	if got := Error(errors.New("boom")); got.Value.String() != "boom" {
		t.Fatalf("unexpected error attr: %v", got)
	}
	if got := DurationMS(42); got.Value.Int64() != 42 {
		t.Fatalf("unexpected duration attr: %v", got)
	}
}
