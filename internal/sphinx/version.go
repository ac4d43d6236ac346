package sphinx

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PipVersionDetector resolves the installed runestone version through pip.
type PipVersionDetector struct {
	// Package defaults to "runestone".
	Package string
}

// DetectRunestoneVersion runs `python -m pip show <package>` and returns the
// reported version.
func (d PipVersionDetector) DetectRunestoneVersion(ctx context.Context, python string) (string, error) {
	pkg := d.Package
	if pkg == "" {
		pkg = "runestone"
	}
	if python == "" {
		python = "python3"
	}
	pythonPath, err := exec.LookPath(python)
	if err != nil {
		return "", fmt.Errorf("locate python interpreter %q: %w", python, err)
	}

	// #nosec G204 -- interpreter is resolved via exec.LookPath from configuration
	cmd := exec.CommandContext(ctx, pythonPath, "-m", "pip", "show", pkg)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if strings.Contains(stderr.String(), "not found") {
			return "", fmt.Errorf("%w: %s", ErrRunestoneNotInstalled, pkg)
		}
		return "", fmt.Errorf("pip show %s: %w: %s", pkg, err, strings.TrimSpace(stderr.String()))
	}

	version := ParsePipShowVersion(string(out))
	if version == "" {
		return "", fmt.Errorf("%w: no version in pip output for %s", ErrRunestoneNotInstalled, pkg)
	}
	return version, nil
}

// ParsePipShowVersion extracts the Version field from `pip show` output.
// Returns "" when the field is absent.
func ParsePipShowVersion(output string) string {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if ok && strings.EqualFold(strings.TrimSpace(key), "version") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
