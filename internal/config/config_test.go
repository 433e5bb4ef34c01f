package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "safe", cfg.Mode)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
	assert.Equal(t, DefaultBoxSanityWidth, cfg.BoxSanityWidth)
	assert.True(t, cfg.GitignoreEnabled())
	assert.False(t, cfg.Write)
	assert.Zero(t, cfg.MaxFileSize)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	data := `mode: diagram
extensions:
  - .md
respect_gitignore: false
max_file_size: 1048576
workers: 4
box_sanity_width: 80
write: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "diagram", cfg.Mode)
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.False(t, cfg.GitignoreEnabled())
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 80, cfg.BoxSanityWidth)
	assert.True(t, cfg.Write)
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("write: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "safe", cfg.Mode)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
	assert.Equal(t, DefaultBoxSanityWidth, cfg.BoxSanityWidth)
	assert.True(t, cfg.Write)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("mode: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDiscoverWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("mode: diagram\n"), 0o644))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, "diagram", cfg.Mode)
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Mode, cfg.Mode)
}

func TestDiscoverPrefersNearestFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("mode: safe\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, FileName), []byte("mode: diagram\n"), 0o644))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, "diagram", cfg.Mode)
}
