package config

import (
	"strings"

	"github.com/MILO15/JS4Python/internal/foundation/normalization"
)

// Normalize trims and case-folds user supplied values and fills derived defaults.
func Normalize(cfg *Config) {
	ta := &cfg.Build.TemplateArgs
	ta.CourseID = strings.TrimSpace(ta.CourseID)
	ta.LoginRequired = normalizeFlag(ta.LoginRequired)
	ta.UseServices = normalizeFlag(ta.UseServices)
	ta.Python3 = normalizeFlag(ta.Python3)
	ta.DBURL = strings.TrimSpace(ta.DBURL)
	ta.BaseCourse = strings.TrimSpace(ta.BaseCourse)
	if ta.BaseCourse == "" {
		ta.BaseCourse = ta.CourseID
	}
	if ta.AppName == "" {
		ta.AppName = cfg.Master.App
	}
	if cfg.Build.ProjectName == "" {
		cfg.Build.ProjectName = ta.CourseID
	}
	if cfg.Sphinx.Builder == "" {
		cfg.Sphinx.Builder = "html"
	}
	if cfg.Sphinx.Binary == "" {
		cfg.Sphinx.Binary = "sphinx-build"
	}
	if cfg.Runestone.Python == "" {
		cfg.Runestone.Python = "python3"
	}
	if cfg.Serving.Dir == "" {
		cfg.Serving.Dir = cfg.Build.OutDir
	}
	for i, h := range cfg.Master.KnownHosts {
		cfg.Master.KnownHosts[i] = strings.ToLower(strings.TrimSpace(h))
	}
}

var flags = normalization.NewNormalizer(map[string]string{
	"1": "true", "yes": "true", "on": "true", "true": "true",
	"0": "false", "no": "false", "off": "false", "false": "false",
}, "")

// normalizeFlag maps the usual spellings of a boolean onto "true"/"false".
// Unknown spellings are returned lower-cased for Validate to reject.
func normalizeFlag(v string) string {
	if s, ok := flags.Lookup(v); ok {
		return s
	}
	return strings.ToLower(strings.TrimSpace(v))
}
