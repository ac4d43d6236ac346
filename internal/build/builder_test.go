package build

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MILO15/JS4Python/internal/config"
	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/history"
	"github.com/MILO15/JS4Python/internal/metrics"
)

type recordingRunner struct {
	calls int
	err   error
	seen  *config.Config
}

func (r *recordingRunner) Execute(_ context.Context, cfg *config.Config) error {
	r.calls++
	r.seen = cfg
	return r.err
}

type countingRecorder struct {
	metrics.NoopRecorder
	stages   map[string]metrics.ResultLabel
	outcomes []metrics.ResultLabel
}

func (c *countingRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	if c.stages == nil {
		c.stages = map[string]metrics.ResultLabel{}
	}
	c.stages[stage] = result
}

func (c *countingRecorder) IncBuildOutcome(result metrics.ResultLabel) {
	c.outcomes = append(c.outcomes, result)
}

// courseConfig returns an assembled configuration rooted in a temp docroot.
func courseConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "_sources"), 0o750))

	cfg := config.Default()
	cfg.Sphinx.DocRoot = root
	cfg.Build.BuildDir = filepath.Join(root, "build", "JS4Python")
	cfg.Build.OutDir = filepath.Join(root, "build", "JS4Python")
	cfg.Build.ConfDir = root
	cfg.Build.TemplateArgs.CourseURL = config.DefaultLocalURL
	cfg.Build.TemplateArgs.RunestoneVersion = "6.3.1"
	return cfg
}

func newTestBuilder(runner *recordingRunner) *Builder {
	b := NewBuilder(runner)
	b.newID = func() string { return "build-1" }
	return b
}

func TestBuilder_Run_Success(t *testing.T) {
	cfg := courseConfig(t)
	runner := &recordingRunner{}
	rec := &countingRecorder{}
	store, err := history.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	report, err := newTestBuilder(runner).WithRecorder(rec).WithHistory(store).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, "build-1", report.BuildID)
	assert.Equal(t, 1, runner.calls)
	assert.Same(t, cfg, runner.seen)
	assert.Len(t, report.StageDurations, 3)
	assert.Equal(t, metrics.ResultSuccess, rec.stages[string(StageRender)])
	assert.Equal(t, []metrics.ResultLabel{metrics.ResultSuccess}, rec.outcomes)

	assert.Equal(t, filepath.Join(cfg.Build.BuildDir, "doctrees", ContextFileName), report.ContextFile)
	assert.NoFileExists(t, filepath.Join(cfg.Build.OutDir, ContextFileName))
	data, err := os.ReadFile(report.ContextFile)
	require.NoError(t, err)
	var doc buildContext
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "build-1", doc.BuildID)
	assert.Equal(t, "JS4Python", doc.Project)
	assert.Equal(t, config.DefaultLocalURL, doc.TemplateArgs[config.KeyCourseURL])
	assert.Equal(t, "6.3.1", doc.TemplateArgs[config.KeyRunestoneVersion])

	recent, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, history.StatusSuccess, recent[0].Status)
	assert.Equal(t, "6.3.1", recent[0].RunestoneVersion)
}

func TestBuilder_Run_MissingSourceDir(t *testing.T) {
	cfg := courseConfig(t)
	cfg.Build.SourceDir = "missing"
	runner := &recordingRunner{}

	report, err := newTestBuilder(runner).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Zero(t, runner.calls)
}

func TestBuilder_Run_RenderFailure(t *testing.T) {
	cfg := courseConfig(t)
	runner := &recordingRunner{err: errors.New("exit status 2")}
	rec := &countingRecorder{}
	store, err := history.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	report, err := newTestBuilder(runner).WithRecorder(rec).WithHistory(store).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategorySphinx))
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Equal(t, metrics.ResultFailed, rec.stages[string(StageRender)])

	recent, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, history.StatusFailed, recent[0].Status)
	assert.Contains(t, recent[0].Error, "exit status 2")
}

func TestBuilder_Run_RequiresAssembledConfig(t *testing.T) {
	cfg := courseConfig(t)
	cfg.Build.TemplateArgs.CourseURL = ""
	runner := &recordingRunner{}

	_, err := newTestBuilder(runner).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.Zero(t, runner.calls)
}

func TestBuilder_Run_Canceled(t *testing.T) {
	cfg := courseConfig(t)
	runner := &recordingRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestBuilder(runner).Run(ctx, cfg)
	require.Error(t, err)
	assert.Equal(t, OutcomeCanceled, report.Outcome)
	assert.Zero(t, runner.calls)
}

func TestBuilder_Run_NilConfig(t *testing.T) {
	report, err := newTestBuilder(&recordingRunner{}).Run(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, report.Outcome)
}

func TestReport_Duration(t *testing.T) {
	start := time.Now()
	r := &Report{Start: start}
	assert.Zero(t, r.Duration())
	r.End = start.Add(3 * time.Second)
	assert.Equal(t, 3*time.Second, r.Duration())
}
