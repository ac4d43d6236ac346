package sphinx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/MILO15/JS4Python/internal/config"
)

// Runner performs the actual site build for an assembled configuration. The
// default BinaryRunner shells out to sphinx-build; NoopRunner lets callers and
// tests exercise the surrounding pipeline without a Python toolchain.
type Runner interface {
	Execute(ctx context.Context, cfg *config.Config) error
}

// BinaryRunner invokes the sphinx-build executable named in the configuration.
type BinaryRunner struct {
	// Stdout receives sphinx-build output as it runs. Nil buffers it for logging.
	Stdout io.Writer
}

// Args returns the sphinx-build argument vector for cfg. Template arguments are
// passed as -A key=value in key order so the command line is reproducible.
func Args(cfg *config.Config) []string {
	args := []string{
		"-b", cfg.Sphinx.Builder,
		"-d", filepath.Join(cfg.Build.BuildDir, "doctrees"),
		"-c", cfg.Build.ConfDir,
	}

	templateArgs := cfg.Build.TemplateArgs.Map()
	keys := make([]string, 0, len(templateArgs))
	for k := range templateArgs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		args = append(args, "-A", k+"="+templateArgs[k])
	}
	args = append(args, "-D", "project="+cfg.Build.ProjectName)

	return append(args, cfg.SourcePath(), cfg.Build.OutDir)
}

func (b *BinaryRunner) Execute(ctx context.Context, cfg *config.Config) error {
	binary, err := exec.LookPath(cfg.Sphinx.Binary)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSphinxBinaryNotFound, err)
	}

	args := Args(cfg)
	// #nosec G204 -- binary comes from the course configuration, not remote input
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	if b.Stdout != nil {
		cmd.Stdout = b.Stdout
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr
	slog.Debug("Invoking sphinx-build", "binary", binary, "args", args)

	err = cmd.Run()

	outStr := stdout.String()
	errStr := stderr.String()
	if outStr != "" {
		slog.Debug("sphinx-build stdout", "output", outStr)
	}
	if errStr != "" {
		slog.Warn("sphinx-build stderr", "error_output", errStr)
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrSphinxExecutionFailed, ctxErr)
		}
		if errStr != "" {
			return fmt.Errorf("%w: %w: %s", ErrSphinxExecutionFailed, err, errStr)
		}
		return fmt.Errorf("%w: %w", ErrSphinxExecutionFailed, err)
	}
	return nil
}

// NoopRunner performs no rendering.
type NoopRunner struct{}

func (NoopRunner) Execute(_ context.Context, cfg *config.Config) error {
	slog.Debug("NoopRunner skipping sphinx-build", "outdir", cfg.Build.OutDir)
	return nil
}
