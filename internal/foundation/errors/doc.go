// Package errors provides the classified error primitives used across js4python.
//
// A ClassifiedError carries a category (config, build, sphinx, database, ...),
// a severity and a small context map. The CLI adapter turns the category into a
// process exit code so that a failed course build reports why it failed.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategorySphinx, "sphinx-build failed").
//		WithContext("outdir", cfg.Build.OutDir).
//		Build()
package errors
