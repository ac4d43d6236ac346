package build

import "time"

// Outcome is the final state of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report summarizes a single build run.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	StageDurations map[StageName]time.Duration
	Outcome        Outcome
	ContextFile    string
	Err            error
}

// Duration returns the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}
