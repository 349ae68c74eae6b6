package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadableFiles(t *testing.T) {
	dir := t.TempDir()

	for _, path := range []string{
		"index.mml",
		"posts/first.mml",
		"posts/deep/nested.mml",
		"posts/readme.txt",
		"style.css",
		"generator.yml",
	} {
		full := filepath.Join(dir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}

	files, err := LoadableFiles(dir)
	require.NoError(t, err)

	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}

	assert.Equal(t, []string{
		"index.mml",
		"posts/deep/nested.mml",
		"posts/first.mml",
	}, rel)
}

func TestLoadableFilesMissingDir(t *testing.T) {
	files, err := LoadableFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Nil(t, files)
	assert.Error(t, err)
}
