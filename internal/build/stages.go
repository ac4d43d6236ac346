package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/MILO15/JS4Python/internal/config"
	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/logfields"
	"github.com/MILO15/JS4Python/internal/metrics"
)

// StageName identifies a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepare      StageName = "prepare"
	StageWriteContext StageName = "write_context"
	StageRender       StageName = "render"
)

// ContextFileName is written before rendering. It holds the resolved dburl, so
// it lives under ContextDir, which is never part of the served site.
const (
	ContextFileName = "template_args.json"
	ContextDir      = "doctrees"
)

// ContextPath returns where the build context file for cfg is written.
func ContextPath(cfg *config.Config) string {
	return filepath.Join(cfg.Build.BuildDir, ContextDir, ContextFileName)
}

// Stage is one step of a build.
type Stage func(ctx context.Context, st *state) error

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// state is the per-build data threaded through the stages.
type state struct {
	cfg     *config.Config
	report  *Report
	builder *Builder
}

func (b *Builder) stages() []StageDef {
	return []StageDef{
		{StagePrepare, stagePrepare},
		{StageWriteContext, stageWriteContext},
		{StageRender, stageRender},
	}
}

// runStages executes stages in order, recording timing and stopping on the first error.
func runStages(ctx context.Context, st *state, stages []StageDef) error {
	rec := st.builder.recorder
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			rec.IncStageResult(string(def.Name), metrics.ResultCanceled)
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "build canceled").
				WithContext("stage", string(def.Name)).
				Build()
		}
		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)
		st.report.StageDurations[def.Name] = dur
		rec.ObserveStageDuration(string(def.Name), dur)

		if err != nil {
			result := metrics.ResultFailed
			if ctx.Err() != nil {
				result = metrics.ResultCanceled
			}
			rec.IncStageResult(string(def.Name), result)
			slog.Error("Build stage failed", logfields.Stage(string(def.Name)), logfields.Error(err))
			return err
		}
		rec.IncStageResult(string(def.Name), metrics.ResultSuccess)
		slog.Debug("Build stage complete", logfields.Stage(string(def.Name)), logfields.DurationMS(dur.Milliseconds()))
	}
	return nil
}

func stagePrepare(_ context.Context, st *state) error {
	src := st.cfg.SourcePath()
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return ferrors.FileSystemError("source directory not found").
			Fatal().
			WithContext("path", src).
			WithCause(err).
			Build()
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat source directory").WithContext("path", src).Build()
	}
	if !info.IsDir() {
		return ferrors.FileSystemError(fmt.Sprintf("source path %s is not a directory", src)).Fatal().Build()
	}

	for _, dir := range []string{st.cfg.Build.BuildDir, st.cfg.Build.OutDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create build directory").
				WithContext("path", dir).
				Build()
		}
	}
	return nil
}

// buildContext is the JSON document written for tools that serve the build.
type buildContext struct {
	BuildID      string            `json:"build_id"`
	Project      string            `json:"project"`
	GeneratedAt  time.Time         `json:"generated_at"`
	TemplateArgs map[string]string `json:"template_args"`
}

func stageWriteContext(_ context.Context, st *state) error {
	doc := buildContext{
		BuildID:      st.report.BuildID,
		Project:      st.cfg.Build.ProjectName,
		GeneratedAt:  st.report.Start.UTC(),
		TemplateArgs: st.cfg.Build.TemplateArgs.Map(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode build context").Build()
	}
	path := ContextPath(st.cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create build context directory").
			WithContext("path", path).
			Build()
	}
	if err := renameio.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write build context").
			WithContext("path", path).
			Build()
	}
	st.report.ContextFile = path
	return nil
}

func stageRender(ctx context.Context, st *state) error {
	if err := st.builder.runner.Execute(ctx, st.cfg); err != nil {
		return ferrors.WrapError(err, ferrors.CategorySphinx, "sphinx build failed").
			Fatal().
			WithContext("outdir", st.cfg.Build.OutDir).
			Build()
	}
	return nil
}
