package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/MILO15/JS4Python/internal/config"
	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of builds to list" default:"10"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return ferrors.ConfigError("build history is disabled (history.path is empty)").Build()
	}
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryHistory, "failed to open build history").
			WithContext("path", cfg.History.Path).
			Build()
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryHistory, "failed to read build history").Build()
	}
	if len(records) == 0 {
		fmt.Fprintln(g.Stdout, "No builds recorded")
		return nil
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tDURATION\tCOURSE\tVERSION\tCOMMIT\tBUILD")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime),
			r.Status,
			r.Duration.Round(time.Millisecond),
			r.CourseID,
			r.RunestoneVersion,
			orDash(r.SourceCommit),
			r.BuildID)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
