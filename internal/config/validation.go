package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
)

// Validate checks a loaded configuration before assembly.
func Validate(cfg *Config) error {
	var problems []string
	require := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			problems = append(problems, name+" must not be empty")
		}
	}

	require("sphinx.docroot", cfg.Sphinx.DocRoot)
	require("build.builddir", cfg.Build.BuildDir)
	require("build.sourcedir", cfg.Build.SourceDir)
	require("build.outdir", cfg.Build.OutDir)
	require("build.confdir", cfg.Build.ConfDir)
	require("build.project_name", cfg.Build.ProjectName)
	require("build.template_args.course_id", cfg.Build.TemplateArgs.CourseID)

	ta := cfg.Build.TemplateArgs
	for name, v := range map[string]string{
		KeyLoginRequired: ta.LoginRequired,
		KeyUseServices:   ta.UseServices,
		KeyPython3:       ta.Python3,
	} {
		if v != "true" && v != "false" {
			problems = append(problems, fmt.Sprintf("build.template_args.%s must be true or false, got %q", name, v))
		}
	}
	if ta.LogLevel < 0 {
		problems = append(problems, "build.template_args.loglevel must not be negative")
	}

	for name, v := range map[string]string{
		"master.url":            cfg.Master.URL,
		"master.production_url": cfg.Master.ProductionURL,
		"master.local_url":      cfg.Master.LocalURL,
	} {
		if v == "" && name == "master.url" {
			continue
		}
		if err := validateHTTPURL(v); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if cfg.Watch.Debounce < 0 || cfg.Watch.Interval < 0 {
		problems = append(problems, "watch durations must not be negative")
	}

	if len(problems) == 0 {
		return nil
	}
	slices.Sort(problems)
	return ferrors.ValidationError("invalid configuration: " + strings.Join(problems, "; ")).
		WithContext("problems", len(problems)).
		Build()
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// ValidateTemplateArgs reports every required key that is missing or empty.
func ValidateTemplateArgs(args map[string]string) error {
	var missing []string
	for _, key := range RequiredTemplateKeys {
		if strings.TrimSpace(args[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return ferrors.ValidationError("missing required template arguments: " + strings.Join(missing, ", ")).
		WithContext("missing", len(missing)).
		Build()
}
