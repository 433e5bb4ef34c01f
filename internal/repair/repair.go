// Package repair exposes the diagram pipeline as a pure function over
// text lines: detect, normalize, overlay. Input containing nothing the
// detector is confident about comes back unchanged, and the function
// never fails; ambiguity is handled by leaving things alone.
package repair

import (
	"strings"

	"gridfix/internal/detect"
	"gridfix/internal/grid"
	"gridfix/internal/normalize"
	"gridfix/internal/render"
)

// Options tunes the pipeline.
type Options struct {
	// BoxSanityWidth bounds side-by-side balancing; zero means the
	// default.
	BoxSanityWidth int
}

// Lines repairs one block of text lines with default options.
func Lines(lines []string) []string {
	return LinesOptions(lines, Options{})
}

// LinesOptions repairs one block of text lines. The input slice is
// never modified; when nothing recognizable is found it is returned
// as-is.
func LinesOptions(lines []string, opts Options) []string {
	if len(lines) == 0 {
		return lines
	}
	g := grid.FromLines(lines)
	detected := detect.Scan(g)
	if detected.Empty() {
		return lines
	}
	normalized := normalize.RunOptions(detected, normalize.Options{
		SanityWidth: opts.BoxSanityWidth,
	})
	return render.Overlay(g, detected, normalized).Render()
}

// Document repairs a whole newline-joined text blob.
func Document(text string) string {
	return strings.Join(Lines(strings.Split(text, "\n")), "\n")
}
