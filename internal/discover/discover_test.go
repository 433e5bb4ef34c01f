package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"md", []string{".md"}},
		{".md", []string{".md"}},
		{"md,markdown", []string{".md", ".markdown"}},
		{" md , .TXT ", []string{".md", ".txt"}},
		{"md,,", []string{".md"}},
	}
	for _, tt := range tests {
		got, err := ParseExtensions(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseExtensionsRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "  ", ",,"} {
		_, err := ParseExtensions(in)
		assert.Error(t, err, "%q", in)
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "doc.md")
	txt := filepath.Join(dir, "notes.txt")
	writeFile(t, md)
	writeFile(t, txt)

	f := NewFinder([]string{".md"}, true)
	got, err := f.Discover([]string{md, txt})
	require.NoError(t, err)
	assert.Equal(t, []string{md}, got)
}

func TestDiscoverWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"))
	writeFile(t, filepath.Join(dir, "sub", "b.md"))
	writeFile(t, filepath.Join(dir, "sub", "c.txt"))

	f := NewFinder([]string{".md"}, true)
	got, err := f.Discover([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "sub", "b.md"),
	}, got)
}

func TestDiscoverRespectsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.md"))
	writeFile(t, filepath.Join(dir, "build", "gen.md"))
	writeFile(t, filepath.Join(dir, "draft.md"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("build/\ndraft.md\n"), 0o644))

	f := NewFinder([]string{".md"}, true)
	got, err := f.Discover([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "keep.md")}, got)
}

func TestDiscoverGitignoreDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.md"))
	writeFile(t, filepath.Join(dir, "draft.md"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("draft.md\n"), 0o644))

	f := NewFinder([]string{".md"}, false)
	got, err := f.Discover([]string{dir})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDiscoverSkipsGitDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"))
	writeFile(t, filepath.Join(dir, ".git", "hidden.md"))

	f := NewFinder([]string{".md"}, false)
	got, err := f.Discover([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.md")}, got)
}

func TestDiscoverMissingPath(t *testing.T) {
	f := NewFinder([]string{".md"}, true)
	_, err := f.Discover([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	f := NewFinder([]string{".md"}, true)
	assert.True(t, f.Matches("README.MD"))
	assert.False(t, f.Matches("main.go"))
}
