package deploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/MILO15/JS4Python/internal/foundation/errors"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCopy(t *testing.T) {
	root := t.TempDir()
	serving := filepath.Join(root, "build", "JS4Python")
	write(t, filepath.Join(serving, "index.html"), "<h1>JS4Python</h1>")
	write(t, filepath.Join(serving, "_static", "runestone.js"), "// js")
	write(t, filepath.Join(serving, "doctrees", "index.doctree"), "pickle")
	write(t, filepath.Join(serving, ".buildinfo"), "config: abc")
	write(t, filepath.Join(serving, "template_args.json"), `{"dburl":"postgresql://u:secret@db/rs"}`)
	dest := filepath.Join(root, "static")

	res, err := Copy(serving, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, int64(len("<h1>JS4Python</h1>")+len("// js")), res.Bytes)

	data, err := os.ReadFile(filepath.Join(dest, "JS4Python", "_static", "runestone.js"))
	require.NoError(t, err)
	assert.Equal(t, "// js", string(data))
	assert.NoDirExists(t, filepath.Join(dest, "JS4Python", "doctrees"))
	assert.NoFileExists(t, filepath.Join(dest, "JS4Python", ".buildinfo"))
	assert.NoFileExists(t, filepath.Join(dest, "JS4Python", "template_args.json"))
}

func TestCopy_MissingSource(t *testing.T) {
	root := t.TempDir()
	_, err := Copy(filepath.Join(root, "missing"), filepath.Join(root, "static"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestCopy_DestinationInsideSource(t *testing.T) {
	root := t.TempDir()
	serving := filepath.Join(root, "site")
	write(t, filepath.Join(serving, "index.html"), "x")

	_, err := Copy(serving, serving)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}
