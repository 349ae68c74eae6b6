package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"eval"}, cfg.EvalTags)
	assert.True(t, cfg.SharedContext)
	assert.Equal(t, ".html", cfg.OutputExt)
	assert.Empty(t, cfg.FallbackNamespaces)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	contents := `eval_tags: [eval, calc]
shared_context: false
output_ext: ".htm"
fallback_namespaces:
  core: [site, blog]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(contents), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"eval", "calc"}, cfg.EvalTags)
	assert.False(t, cfg.SharedContext)
	assert.Equal(t, ".htm", cfg.OutputExt)
	assert.Equal(t, map[string][]string{"core": {"site", "blog"}}, cfg.FallbackNamespaces)
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("output_ext: .txt\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	// untouched fields keep their defaults
	assert.Equal(t, []string{"eval"}, cfg.EvalTags)
	assert.True(t, cfg.SharedContext)
	assert.Equal(t, ".txt", cfg.OutputExt)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("eval_tags: [a\n"), 0o644))

	cfg, err := LoadConfig(dir)
	assert.Nil(t, cfg)
	assert.Error(t, err)
}
