package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MILO15/JS4Python/internal/build"
	"github.com/MILO15/JS4Python/internal/config"
	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/history"
	"github.com/MILO15/JS4Python/internal/logfields"
	"github.com/MILO15/JS4Python/internal/metrics"
	"github.com/MILO15/JS4Python/internal/sphinx"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	DryRun bool `name:"dry-run" help:"Assemble configuration and prepare directories without running sphinx-build"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := g.loadAndAssemble(ctx, root.Config)
	if err != nil {
		return err
	}
	_, err = g.RunBuild(ctx, cfg, b.DryRun)
	return err
}

// RunBuild builds the course described by an assembled configuration.
func (g *Global) RunBuild(ctx context.Context, cfg *config.Config, dryRun bool) (*build.Report, error) {
	// Provide friendly user-facing messages on stdout.
	fmt.Fprintf(g.Stdout, "Building %s for %s\n", cfg.Build.ProjectName, cfg.Build.TemplateArgs.CourseURL)

	runner := g.Runner
	if dryRun {
		runner = sphinx.NoopRunner{}
	}
	builder := build.NewBuilder(runner)

	if cfg.History.Path != "" {
		store, err := history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryHistory, "failed to open build history").
				WithContext("path", cfg.History.Path).
				Build()
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close build history", logfields.Error(err))
			}
		}()
		builder.WithHistory(store)
	}

	var recorder *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		recorder = metrics.NewPrometheusRecorder(nil, cfg.Build.TemplateArgs.CourseID)
		builder.WithRecorder(recorder)
	}

	report, err := builder.Run(ctx, cfg)

	if recorder != nil {
		if werr := recorder.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(werr))
		}
	}
	if err != nil {
		fmt.Fprintln(g.Stdout, "Build failed")
		return report, err
	}
	fmt.Fprintf(g.Stdout, "Build %s complete in %s: %s\n", report.BuildID, report.Duration().Round(time.Millisecond), cfg.Build.OutDir)
	return report, nil
}
