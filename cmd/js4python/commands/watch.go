package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/MILO15/JS4Python/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Interval time.Duration `help:"Also rebuild on this interval (overrides watch.interval, 0 keeps the configured value)"`
	DryRun   bool          `name:"dry-run" help:"Skip sphinx-build on each rebuild"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := g.loadAndAssemble(ctx, root.Config)
	if err != nil {
		return err
	}
	interval := cfg.Watch.Interval
	if w.Interval > 0 {
		interval = w.Interval
	}

	watcher, err := watch.New(watch.Options{
		Dirs:     []string{cfg.SourcePath(), cfg.Build.ConfDir},
		Ignore:   []string{cfg.Build.BuildDir, cfg.Build.OutDir, cfg.Serving.Dir},
		Debounce: cfg.Watch.Debounce,
		Interval: interval,
	}, g.rebuilder(root.Config, w.DryRun))
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Stdout, "Watching %s (Ctrl+C to stop)\n", cfg.SourcePath())
	if err := watcher.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Stopped after %d builds\n", watcher.Builds())
	return nil
}

// rebuilder reloads and reassembles the configuration for every rebuild so
// that source_commit, runestone_version and course.yaml edits are current.
func (g *Global) rebuilder(path string, dryRun bool) watch.RebuildFunc {
	return func(ctx context.Context, reason string) error {
		fmt.Fprintf(g.Stdout, "Rebuilding (%s)\n", reason)
		cfg, err := g.loadAndAssemble(ctx, path)
		if err != nil {
			return err
		}
		_, err = g.RunBuild(ctx, cfg, dryRun)
		return err
	}
}
