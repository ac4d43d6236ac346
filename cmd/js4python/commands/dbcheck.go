package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/MILO15/JS4Python/internal/config"
	"github.com/MILO15/JS4Python/internal/dbcheck"
	"github.com/MILO15/JS4Python/internal/retry"
)

// DBCheckCmd implements the 'dbcheck' command.
type DBCheckCmd struct {
	Timeout time.Duration `help:"Overall timeout including retries" default:"30s"`
	Retries int           `help:"Retries while the database is unreachable" default:"2"`
}

func (d *DBCheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	dburl := config.ResolveDBURL(g.Env, cfg.Build.TemplateArgs.DBURL)

	ctx, cancel := signalContext()
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, d.Timeout)
	defer cancelTimeout()

	fmt.Fprintf(g.Stdout, "Checking %s\n", dbcheck.Redact(dburl))
	res, err := dbcheck.PingWithRetry(ctx, dburl, retry.NewPolicy(retry.Linear, time.Second, 5*time.Second, d.Retries))
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "OK: PostgreSQL %s (%s)\n", res.ServerVersion, res.Latency.Round(time.Millisecond))
	return nil
}
