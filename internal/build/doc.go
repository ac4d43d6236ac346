// Package build runs a course build for an assembled configuration.
//
// A build is a fixed sequence of stages: prepare checks the sphinx source tree
// and creates the output directories, write_context records the template
// arguments as doctrees/template_args.json, and render invokes sphinx-build. Each stage
// is timed into the Report and the metrics Recorder, and the finished build is
// appended to the history Store when one is configured.
package build
