package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/MILO15/JS4Python/internal/config"
	"github.com/MILO15/JS4Python/internal/foundation/normalization"
	"github.com/MILO15/JS4Python/internal/gitinfo"
	"github.com/MILO15/JS4Python/internal/sphinx"
)

// Global carries the collaborators shared by all subcommands. Tests replace
// them with fakes; NewGlobal wires the real ones.
type Global struct {
	Stdout   io.Writer
	Hostname func() (string, error)
	Env      config.LookupEnv
	Versions config.VersionDetector
	Commit   func(dir string) (string, error)
	Runner   sphinx.Runner
}

// NewGlobal returns the production collaborators.
func NewGlobal() *Global {
	return &Global{
		Stdout:   os.Stdout,
		Hostname: os.Hostname,
		Env:      os.LookupEnv,
		Versions: sphinx.PipVersionDetector{},
		Commit:   gitinfo.HeadCommit,
		Runner:   &sphinx.BinaryRunner{},
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Course configuration file" default:"course.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"1" help:"Build the course with sphinx-build (default)"`
	Init    InitCmd    `cmd:"" help:"Write an example course configuration"`
	Show    ShowCmd    `cmd:"" name:"config" help:"Print the assembled configuration"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild whenever course sources change"`
	Deploy  DeployCmd  `cmd:"" help:"Copy the built course into the static directory"`
	History HistoryCmd `cmd:"" help:"List recent builds"`
	DBCheck DBCheckCmd `cmd:"" name:"dbcheck" help:"Check that the course database is reachable"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

var logLevels = normalization.NewNormalizer(map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// parseLogLevel honours --verbose first, then JS4PYTHON_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return logLevels.Normalize(os.Getenv("JS4PYTHON_LOG_LEVEL"))
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// loadAndAssemble is the startup settings step shared by build-like commands.
func (g *Global) loadAndAssemble(ctx context.Context, path string) (*config.Config, error) {
	base, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return config.Assemble(ctx, base, config.AssembleOptions{
		Hostname:  g.Hostname,
		LookupEnv: g.Env,
		Versions:  g.Versions,
		Commit:    g.Commit,
	})
}
