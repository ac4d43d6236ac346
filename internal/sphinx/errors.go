package sphinx

import "errors"

var (
	// ErrSphinxBinaryNotFound indicates the sphinx-build executable was not found.
	ErrSphinxBinaryNotFound = errors.New("sphinx-build binary not found")
	// ErrSphinxExecutionFailed indicates sphinx-build returned a non-zero exit status.
	ErrSphinxExecutionFailed = errors.New("sphinx-build execution failed")
	// ErrRunestoneNotInstalled indicates pip has no record of the runestone package.
	ErrRunestoneNotInstalled = errors.New("runestone package not installed")
)
