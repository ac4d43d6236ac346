package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID   = "build_id"
	KeyCourse    = "course_id"
	KeyStage     = "stage"
	KeyDuration  = "duration_ms"
	KeyPath      = "path"
	KeyHost      = "hostname"
	KeyMasterURL = "master_url"
	KeyVersion   = "runestone_version"
	KeyCommit    = "source_commit"
	KeyOutcome   = "outcome"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Course(id string) slog.Attr      { return slog.String(KeyCourse, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms int64) slog.Attr   { return slog.Int64(KeyDuration, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Host(h string) slog.Attr         { return slog.String(KeyHost, h) }
func MasterURL(u string) slog.Attr    { return slog.String(KeyMasterURL, u) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
