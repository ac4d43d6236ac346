package config

import "time"

// Course defaults for the JS4Python book.
const (
	DefaultPath          = "course.yaml"
	DefaultCourseID      = "JS4Python"
	DefaultMasterApp     = "runestone"
	DefaultProductionURL = "http://interactivepython.org"
	DefaultLocalURL      = "http://127.0.0.1:8000"
	DefaultDBURL         = "postgresql://bmiller@localhost/runestone"
	DefaultBuildDir      = "./build/JS4Python"
	DefaultLogLevel      = 10
)

// DefaultKnownHosts are the build hosts that publish to the production site.
var DefaultKnownHosts = []string{"web407.webfaction.com", "rsbuilder"}

// Default returns the built-in course configuration. Computed template
// arguments (course_url, runestone_version, source_commit) are left empty
// and filled in by Assemble.
func Default() *Config {
	return &Config{
		Sphinx: SphinxConfig{
			DocRoot: ".",
			Binary:  "sphinx-build",
			Builder: "html",
		},
		Build: BuildConfig{
			BuildDir:    DefaultBuildDir,
			SourceDir:   "_sources",
			OutDir:      DefaultBuildDir,
			ConfDir:     ".",
			ProjectName: DefaultCourseID,
			TemplateArgs: TemplateArgs{
				CourseID:      DefaultCourseID,
				LoginRequired: "true",
				AppName:       DefaultMasterApp,
				LogLevel:      DefaultLogLevel,
				UseServices:   "true",
				Python3:       "true",
				DBURL:         DefaultDBURL,
				BaseCourse:    DefaultCourseID,
			},
		},
		Master: MasterConfig{
			ProductionURL: DefaultProductionURL,
			LocalURL:      DefaultLocalURL,
			KnownHosts:    append([]string(nil), DefaultKnownHosts...),
			App:           DefaultMasterApp,
		},
		Serving: ServingConfig{
			Dir:  DefaultBuildDir,
			Dest: "../../static",
		},
		Runestone: RunestoneConfig{
			Python: "python3",
		},
		History: HistoryConfig{
			Path: "./build/history.db",
		},
		Watch: WatchConfig{
			Debounce: 2 * time.Second,
		},
	}
}
