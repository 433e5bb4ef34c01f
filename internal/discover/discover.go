// Package discover finds the files a gridfix run should process:
// explicit file arguments filtered by extension, and directories
// walked recursively with optional .gitignore filtering.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ParseExtensions splits a comma-separated extension list and
// normalizes each entry to a leading-dot form ("md" and ".md" are
// equivalent).
func ParseExtensions(s string) ([]string, error) {
	var exts []string
	for _, part := range strings.Split(s, ",") {
		ext := strings.TrimSpace(part)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, strings.ToLower(ext))
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("no valid extensions in %q", s)
	}
	return exts, nil
}

// Finder filters files by extension and optionally by .gitignore
// rules.
type Finder struct {
	extensions       []string
	respectGitignore bool
}

// NewFinder builds a Finder for the given normalized extensions.
func NewFinder(extensions []string, respectGitignore bool) *Finder {
	return &Finder{extensions: extensions, respectGitignore: respectGitignore}
}

// Matches reports whether a path has one of the configured extensions.
func (f *Finder) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range f.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Discover resolves every input path: files are included when their
// extension matches, directories are walked recursively. The result is
// sorted for deterministic processing order.
func (f *Finder) Discover(paths []string) ([]string, error) {
	var results []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if f.Matches(p) {
				results = append(results, p)
			}
			continue
		}
		found, err := f.walk(p)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	sort.Strings(results)
	return results, nil
}

func (f *Finder) walk(root string) ([]string, error) {
	var ign *gitignore.GitIgnore
	if f.respectGitignore {
		if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			ign = gi
		}
	}
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if ign != nil && rel != "." && ign.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if ign != nil && ign.MatchesPath(rel) {
			return nil
		}
		if f.Matches(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return out, nil
}
