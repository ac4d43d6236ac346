package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/logfields"
)

// VersionDetector resolves the version of the installed runestone package.
type VersionDetector interface {
	DetectRunestoneVersion(ctx context.Context, python string) (string, error)
}

// AssembleOptions supplies the ambient inputs Assemble needs. Zero values fall
// back to the real process environment.
type AssembleOptions struct {
	Hostname  func() (string, error)
	LookupEnv LookupEnv
	Versions  VersionDetector
	// Commit returns the source commit for a directory, or "" when unknown.
	Commit func(dir string) (string, error)
}

// Assemble computes the derived template arguments on a copy of base:
// course_url from the hostname, runestone_version from the installed package,
// source_commit from the docroot repository and dburl from the environment.
// base itself is left untouched.
func Assemble(ctx context.Context, base *Config, opts AssembleOptions) (*Config, error) {
	if base == nil {
		return nil, ferrors.InternalError("assemble called with nil configuration").Build()
	}
	if opts.Hostname == nil {
		opts.Hostname = os.Hostname
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	cfg := base.Clone()
	ta := &cfg.Build.TemplateArgs

	hostname, err := opts.Hostname()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to resolve hostname").Fatal().Build()
	}
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	ta.CourseURL = ResolveMasterURL(cfg.Master.URL, hostname, cfg.Master.KnownHosts, cfg.Master.ProductionURL, cfg.Master.LocalURL)
	slog.Debug("Resolved master URL", logfields.Host(hostname), logfields.MasterURL(ta.CourseURL))

	version := strings.TrimSpace(cfg.Runestone.Version)
	if version == "" {
		if opts.Versions == nil {
			return nil, ferrors.ConfigError("no runestone version configured and no detector available").Build()
		}
		version, err = opts.Versions.DetectRunestoneVersion(ctx, cfg.Runestone.Python)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to resolve runestone version").
				Fatal().
				WithContext("python", cfg.Runestone.Python).
				Build()
		}
	}
	ta.RunestoneVersion = version

	if opts.Commit != nil {
		commit, err := opts.Commit(cfg.Sphinx.DocRoot)
		if err != nil {
			// A missing commit only loses provenance; the build can still run.
			slog.Warn("Could not determine source commit", logfields.Path(cfg.Sphinx.DocRoot), logfields.Error(err))
		}
		ta.SourceCommit = commit
	}

	ta.DBURL = ResolveDBURL(opts.LookupEnv, ta.DBURL)

	if err := ValidateTemplateArgs(ta.Map()); err != nil {
		return nil, err
	}

	slog.Info("Assembled course configuration",
		logfields.Course(ta.CourseID),
		logfields.MasterURL(ta.CourseURL),
		logfields.Version(ta.RunestoneVersion),
		logfields.Commit(ta.SourceCommit))
	return cfg, nil
}

// SourcePath returns the sphinx source directory resolved under the docroot.
func (c *Config) SourcePath() string {
	if filepath.IsAbs(c.Build.SourceDir) {
		return c.Build.SourceDir
	}
	return filepath.Join(c.Sphinx.DocRoot, c.Build.SourceDir)
}
