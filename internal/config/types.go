package config

import (
	"strconv"
	"time"
)

// Config is the assembled course build configuration. It is produced once at
// startup by Load and Assemble and handed to the builder by pointer.
type Config struct {
	Sphinx    SphinxConfig    `yaml:"sphinx"`
	Build     BuildConfig     `yaml:"build"`
	Master    MasterConfig    `yaml:"master"`
	Serving   ServingConfig   `yaml:"serving"`
	Runestone RunestoneConfig `yaml:"runestone"`
	History   HistoryConfig   `yaml:"history"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Watch     WatchConfig     `yaml:"watch"`
}

// SphinxConfig locates the document root and the external sphinx-build tool.
type SphinxConfig struct {
	DocRoot string `yaml:"docroot"`
	Binary  string `yaml:"binary"`  // sphinx-build executable
	Builder string `yaml:"builder"` // sphinx builder name, e.g. html
}

// BuildConfig holds the directories and template arguments handed to sphinx-build.
type BuildConfig struct {
	BuildDir     string       `yaml:"builddir"`
	SourceDir    string       `yaml:"sourcedir"`
	OutDir       string       `yaml:"outdir"`
	ConfDir      string       `yaml:"confdir"`
	ProjectName  string       `yaml:"project_name"`
	TemplateArgs TemplateArgs `yaml:"template_args"`
}

// TemplateArgs are the values exposed to the course templates.
type TemplateArgs struct {
	CourseID         string `yaml:"course_id"`
	LoginRequired    string `yaml:"login_required"`
	AppName          string `yaml:"appname"`
	LogLevel         int    `yaml:"loglevel"`
	CourseURL        string `yaml:"course_url"`
	UseServices      string `yaml:"use_services"`
	Python3          string `yaml:"python3"`
	DBURL            string `yaml:"dburl"`
	BaseCourse       string `yaml:"basecourse"`
	RunestoneVersion string `yaml:"runestone_version"`
	SourceCommit     string `yaml:"source_commit,omitempty"`
}

// Template argument keys as seen by the templates.
const (
	KeyCourseID         = "course_id"
	KeyLoginRequired    = "login_required"
	KeyAppName          = "appname"
	KeyLogLevel         = "loglevel"
	KeyCourseURL        = "course_url"
	KeyUseServices      = "use_services"
	KeyPython3          = "python3"
	KeyDBURL            = "dburl"
	KeyBaseCourse       = "basecourse"
	KeyRunestoneVersion = "runestone_version"
	KeySourceCommit     = "source_commit"
)

// RequiredTemplateKeys lists every key an assembled configuration must carry.
var RequiredTemplateKeys = []string{
	KeyCourseID,
	KeyLoginRequired,
	KeyAppName,
	KeyLogLevel,
	KeyCourseURL,
	KeyUseServices,
	KeyPython3,
	KeyDBURL,
	KeyBaseCourse,
	KeyRunestoneVersion,
}

// Map flattens the arguments into the key=value form passed to sphinx-build.
// source_commit is only present when known.
func (t TemplateArgs) Map() map[string]string {
	m := map[string]string{
		KeyCourseID:         t.CourseID,
		KeyLoginRequired:    t.LoginRequired,
		KeyAppName:          t.AppName,
		KeyLogLevel:         strconv.Itoa(t.LogLevel),
		KeyCourseURL:        t.CourseURL,
		KeyUseServices:      t.UseServices,
		KeyPython3:          t.Python3,
		KeyDBURL:            t.DBURL,
		KeyBaseCourse:       t.BaseCourse,
		KeyRunestoneVersion: t.RunestoneVersion,
	}
	if t.SourceCommit != "" {
		m[KeySourceCommit] = t.SourceCommit
	}
	return m
}

// MasterConfig decides which site serves the course.
type MasterConfig struct {
	URL           string   `yaml:"url"` // explicit override; empty resolves by hostname
	ProductionURL string   `yaml:"production_url"`
	LocalURL      string   `yaml:"local_url"`
	KnownHosts    []string `yaml:"known_hosts"`
	App           string   `yaml:"app"`
}

// ServingConfig describes where a finished build is served from and deployed to.
type ServingConfig struct {
	Dir  string `yaml:"dir"`
	Dest string `yaml:"dest"`
}

// RunestoneConfig controls how the installed runestone version is resolved.
type RunestoneConfig struct {
	Version string `yaml:"version"` // skips detection when set
	Python  string `yaml:"python"`
}

// HistoryConfig locates the build history database. Empty path disables it.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig controls the Prometheus textfile export. Empty path disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Interval time.Duration `yaml:"interval"` // periodic rebuild, zero disables
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Master.KnownHosts = append([]string(nil), c.Master.KnownHosts...)
	return &out
}
