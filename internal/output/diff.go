package output

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineKind classifies one line of a diff.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// DiffLine is a single line of a computed diff. Line numbers are
// 1-based; a number is zero when the line does not exist on that side.
type DiffLine struct {
	Kind   LineKind
	Text   string
	OldNum int
	NewNum int
}

// Hunk is a group of nearby changes with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []DiffLine
}

// hunkContext is the number of unchanged lines shown around a change.
const hunkContext = 3

// DiffEngine computes line-level diffs between a file's current and
// repaired contents.
type DiffEngine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffEngine returns a ready-to-use engine.
func NewDiffEngine() *DiffEngine {
	return &DiffEngine{dmp: diffmatchpatch.New()}
}

// Compare diffs two documents line by line and groups the changes into
// hunks. Identical inputs yield no hunks.
func (e *DiffEngine) Compare(before, after string) []Hunk {
	if before == after {
		return nil
	}
	a, b, lineArr := e.dmp.DiffLinesToChars(before, after)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCleanupSemantic(diffs)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArr)
	return groupHunks(flattenDiffs(diffs), hunkContext)
}

func flattenDiffs(diffs []diffmatchpatch.Diff) []DiffLine {
	var out []DiffLine
	oldNum, newNum := 0, 0
	for _, d := range diffs {
		text := d.Text
		if strings.HasSuffix(text, "\n") {
			text = text[:len(text)-1]
		}
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				oldNum++
				out = append(out, DiffLine{Kind: LineRemoved, Text: line, OldNum: oldNum})
			case diffmatchpatch.DiffInsert:
				newNum++
				out = append(out, DiffLine{Kind: LineAdded, Text: line, NewNum: newNum})
			default:
				oldNum++
				newNum++
				out = append(out, DiffLine{Kind: LineContext, Text: line, OldNum: oldNum, NewNum: newNum})
			}
		}
	}
	return out
}

func groupHunks(lines []DiffLine, context int) []Hunk {
	keep := make([]bool, len(lines))
	for i := range lines {
		if lines[i].Kind == LineContext {
			continue
		}
		lo := max(i-context, 0)
		hi := min(i+context, len(lines)-1)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}
	var hunks []Hunk
	for i := 0; i < len(lines); {
		if !keep[i] {
			i++
			continue
		}
		j := i
		for j < len(lines) && keep[j] {
			j++
		}
		hunks = append(hunks, makeHunk(lines[i:j]))
		i = j
	}
	return hunks
}

func makeHunk(lines []DiffLine) Hunk {
	h := Hunk{Lines: lines}
	for _, l := range lines {
		if l.Kind != LineAdded {
			if h.OldCount == 0 {
				h.OldStart = l.OldNum
			}
			h.OldCount++
		}
		if l.Kind != LineRemoved {
			if h.NewCount == 0 {
				h.NewStart = l.NewNum
			}
			h.NewCount++
		}
	}
	return h
}

// Unified renders hunks in unified diff format with light styling.
func Unified(path string, hunks []Hunk) string {
	if len(hunks) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		b.WriteString(hunkStyle.Render(header))
		b.WriteByte('\n')
		for _, l := range h.Lines {
			switch l.Kind {
			case LineAdded:
				b.WriteString(addedStyle.Render("+" + l.Text))
			case LineRemoved:
				b.WriteString(removedStyle.Render("-" + l.Text))
			default:
				b.WriteString(" " + l.Text)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
