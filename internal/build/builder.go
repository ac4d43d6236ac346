package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MILO15/JS4Python/internal/config"
	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/history"
	"github.com/MILO15/JS4Python/internal/logfields"
	"github.com/MILO15/JS4Python/internal/metrics"
	"github.com/MILO15/JS4Python/internal/sphinx"
)

// Builder executes the build stages and records the outcome.
type Builder struct {
	runner   sphinx.Runner
	recorder metrics.Recorder
	history  history.Store
	newID    func() string
	now      func() time.Time
}

// NewBuilder creates a Builder that renders with runner.
func NewBuilder(runner sphinx.Runner) *Builder {
	if runner == nil {
		runner = &sphinx.BinaryRunner{}
	}
	return &Builder{
		runner:   runner,
		recorder: metrics.NoopRecorder{},
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithHistory sets the store that receives one record per build.
func (b *Builder) WithHistory(s history.Store) *Builder {
	b.history = s
	return b
}

// Run executes a build. The returned report is never nil; its Err mirrors the
// returned error.
func (b *Builder) Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	report := &Report{
		BuildID:        b.newID(),
		Start:          b.now(),
		StageDurations: make(map[StageName]time.Duration),
	}
	if cfg == nil {
		report.Err = ferrors.InternalError("build called with nil configuration").Build()
		report.Outcome = OutcomeFailed
		report.End = b.now()
		return report, report.Err
	}
	if err := config.ValidateTemplateArgs(cfg.Build.TemplateArgs.Map()); err != nil {
		report.Err = err
		report.Outcome = OutcomeFailed
		report.End = b.now()
		return report, err
	}

	ta := cfg.Build.TemplateArgs
	logger := slog.With(logfields.BuildID(report.BuildID), logfields.Course(ta.CourseID))
	logger.Info("Starting course build",
		logfields.Path(cfg.SourcePath()),
		slog.String("outdir", cfg.Build.OutDir),
		logfields.MasterURL(ta.CourseURL))

	err := runStages(ctx, &state{cfg: cfg, report: report, builder: b}, b.stages())
	report.End = b.now()
	report.Err = err
	report.Outcome = outcomeFor(ctx, err)

	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(metrics.ResultLabel(report.Outcome))
	b.recorder.SetLastBuildTimestamp(report.End)
	b.recordHistory(cfg, report)

	if err != nil {
		logger.Error("Course build failed", logfields.Outcome(string(report.Outcome)), logfields.Error(err))
		return report, err
	}
	logger.Info("Course build complete",
		logfields.Outcome(string(report.Outcome)),
		logfields.DurationMS(report.Duration().Milliseconds()))
	return report, nil
}

func outcomeFor(ctx context.Context, err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		return OutcomeCanceled
	default:
		return OutcomeFailed
	}
}

func (b *Builder) recordHistory(cfg *config.Config, report *Report) {
	if b.history == nil {
		return
	}
	ta := cfg.Build.TemplateArgs
	rec := history.Record{
		BuildID:          report.BuildID,
		CourseID:         ta.CourseID,
		StartedAt:        report.Start,
		Duration:         report.Duration(),
		Status:           string(report.Outcome),
		MasterURL:        ta.CourseURL,
		RunestoneVersion: ta.RunestoneVersion,
		SourceCommit:     ta.SourceCommit,
	}
	if report.Err != nil {
		rec.Error = report.Err.Error()
	}
	// History is a ledger, not part of the build; detach from a canceled ctx.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.history.Record(ctx, rec); err != nil {
		slog.Warn("Failed to record build history", logfields.BuildID(report.BuildID), logfields.Error(err))
	}
}
