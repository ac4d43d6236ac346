// Package history keeps a ledger of course builds in SQLite.
package history

import (
	"context"
	"time"
)

// Status values recorded for a build.
const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// Record describes one finished build.
type Record struct {
	BuildID          string
	CourseID         string
	StartedAt        time.Time
	Duration         time.Duration
	Status           string
	MasterURL        string
	RunestoneVersion string
	SourceCommit     string
	Error            string
}

// Store persists build records.
type Store interface {
	Record(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}
