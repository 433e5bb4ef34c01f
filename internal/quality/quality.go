// Package quality scores a document transformation after the fact:
// content preservation, line-count drift and idempotence. The report
// is diagnostic only and never gates a repair.
package quality

import (
	"fmt"
	"strings"
	"unicode"
)

// Severity ranks a reported issue.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Issue is one diagnostic finding about a transformation.
type Issue struct {
	Severity Severity
	Message  string
}

// Report summarizes the quality of one input/output transformation.
type Report struct {
	// Score is an overall rating in [0, 1].
	Score float64
	// ContentPreservation is the fraction of non-structural content
	// characters that survived the transformation.
	ContentPreservation float64
	// LineDelta is output line count minus input line count.
	LineDelta int
	// Idempotent reports whether a second pass changes nothing.
	Idempotent bool
	Issues     []Issue
}

// structuralGlyphs are the characters the pipeline may legitimately
// add, move or remove while reshaping a diagram.
const structuralGlyphs = "┌┐└┘─│╔╗╚╝═║╭╮╰╯├┤┬┴┼╦╩╠╣╬→←↑↓▶◀▲▼⇒⇐⇑⇓╌┄┈┃╎┆┊"

// Evaluate compares a transformation's input and output. reprocess, if
// non-nil, probes idempotence by running the transformation once more
// over the output.
func Evaluate(input, output string, reprocess func(string) string) Report {
	rep := Report{Idempotent: true}

	inCounts := contentCounts(input)
	outCounts := contentCounts(output)

	total, preserved := 0, 0
	var lost []rune
	for r, n := range inCounts {
		total += n
		kept := outCounts[r]
		if kept > n {
			kept = n
		}
		preserved += kept
		if kept < n {
			lost = append(lost, r)
		}
	}
	if total == 0 {
		rep.ContentPreservation = 1.0
	} else {
		rep.ContentPreservation = float64(preserved) / float64(total)
	}
	for _, r := range lost {
		rep.Issues = append(rep.Issues, Issue{
			Severity: Error,
			Message:  fmt.Sprintf("content character %q lost (%d before, %d after)", r, inCounts[r], outCounts[r]),
		})
	}

	rep.LineDelta = strings.Count(output, "\n") - strings.Count(input, "\n")
	if rep.LineDelta != 0 {
		rep.Issues = append(rep.Issues, Issue{
			Severity: Info,
			Message:  fmt.Sprintf("line count changed by %+d", rep.LineDelta),
		})
	}

	if reprocess != nil {
		rep.Idempotent = reprocess(output) == output
		if !rep.Idempotent {
			rep.Issues = append(rep.Issues, Issue{
				Severity: Warning,
				Message:  "transformation is not idempotent: a second pass changes the output again",
			})
		}
	}

	rep.Score = rep.ContentPreservation
	if !rep.Idempotent {
		rep.Score -= 0.2
	}
	if rep.Score < 0 {
		rep.Score = 0
	}
	return rep
}

// contentCounts tallies the characters that must survive a repair:
// everything except whitespace and structural glyphs.
func contentCounts(text string) map[rune]int {
	counts := make(map[rune]int)
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(structuralGlyphs, r) {
			continue
		}
		counts[r]++
	}
	return counts
}

// String renders the report as a plain-text block.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "quality score: %.2f\n", r.Score)
	fmt.Fprintf(&b, "  content preservation: %.2f%%\n", r.ContentPreservation*100)
	fmt.Fprintf(&b, "  line delta: %+d\n", r.LineDelta)
	fmt.Fprintf(&b, "  idempotent: %t\n", r.Idempotent)
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "  [%s] %s\n", issue.Severity, issue.Message)
	}
	return b.String()
}
