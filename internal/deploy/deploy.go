// Package deploy copies a finished course build into the static directory
// served by the web application.
package deploy

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
	"github.com/MILO15/JS4Python/internal/logfields"
)

// skipped names are build artifacts that are not part of the site.
// template_args.json carries the database URL and must never be published.
var skipped = map[string]bool{
	"doctrees":           true,
	".buildinfo":         true,
	"template_args.json": true,
}

// Result counts what Copy wrote.
type Result struct {
	Files int
	Bytes int64
}

// Copy recursively copies the served build in src into dst/<base of src>.
// The destination must not lie inside the source tree.
func Copy(src, dst string) (Result, error) {
	var res Result
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve serving directory").Build()
	}
	target, err := filepath.Abs(filepath.Join(dst, filepath.Base(absSrc)))
	if err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve deploy destination").Build()
	}
	if target == absSrc || strings.HasPrefix(target, absSrc+string(filepath.Separator)) {
		return res, ferrors.ValidationError(fmt.Sprintf("deploy destination %s is inside serving directory %s", target, absSrc)).Build()
	}

	info, err := os.Stat(absSrc)
	if err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "serving directory not found").
			Fatal().
			WithContext("path", absSrc).
			Build()
	}
	if !info.IsDir() {
		return res, ferrors.FileSystemError(fmt.Sprintf("serving path %s is not a directory", absSrc)).Fatal().Build()
	}

	if err := copyDir(absSrc, target, &res); err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryFileSystem, "deploy copy failed").
			WithContext("dest", target).
			Build()
	}
	slog.Info("Deployed course build", logfields.Path(target), slog.Int("files", res.Files), slog.Int64("bytes", res.Bytes))
	return res, nil
}

func copyDir(src, dst string, res *Result) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if skipped[entry.Name()] {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath, res); err != nil {
				return err
			}
			continue
		}
		n, err := copyFile(srcPath, dstPath)
		if err != nil {
			return err
		}
		res.Files++
		res.Bytes += n
	}
	return nil
}

func copyFile(src, dst string) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dstFile, srcFile)
	if cerr := dstFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}

	// Preserve file permissions
	srcInfo, err := srcFile.Stat()
	if err != nil {
		return n, err
	}
	return n, os.Chmod(dst, srcInfo.Mode())
}
