package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerfectTransformation(t *testing.T) {
	in := "┌──┐\n│Hi│\n└──┘\n"
	out := "┌────┐\n│ Hi │\n└────┘\n"
	rep := Evaluate(in, out, func(s string) string { return s })

	assert.Equal(t, 1.0, rep.Score)
	assert.Equal(t, 1.0, rep.ContentPreservation)
	assert.Zero(t, rep.LineDelta)
	assert.True(t, rep.Idempotent)
	assert.Empty(t, rep.Issues)
}

func TestDetectsDataLoss(t *testing.T) {
	rep := Evaluate("hello world", "hello", nil)

	assert.Less(t, rep.ContentPreservation, 1.0)
	require.NotEmpty(t, rep.Issues)
	hasError := false
	for _, issue := range rep.Issues {
		if issue.Severity == Error {
			hasError = true
		}
	}
	assert.True(t, hasError)
}

func TestStructuralGlyphChangesAreFree(t *testing.T) {
	// Border glyphs may be added or removed without penalty.
	rep := Evaluate("┌──┐ A", "┌──────────┐ A", nil)
	assert.Equal(t, 1.0, rep.ContentPreservation)
}

func TestLineDeltaReported(t *testing.T) {
	rep := Evaluate("a\nb", "a\nb\nc\nd", nil)
	assert.Equal(t, 2, rep.LineDelta)
	require.NotEmpty(t, rep.Issues)
	assert.Equal(t, Info, rep.Issues[len(rep.Issues)-1].Severity)
}

func TestNonIdempotentFlagged(t *testing.T) {
	grow := func(s string) string { return s + "x" }
	rep := Evaluate("abc", "abcx", grow)

	assert.False(t, rep.Idempotent)
	found := false
	for _, issue := range rep.Issues {
		if issue.Severity == Warning && strings.Contains(issue.Message, "idempotent") {
			found = true
		}
	}
	assert.True(t, found)
	assert.Less(t, rep.Score, 1.0)
}

func TestEmptyInput(t *testing.T) {
	rep := Evaluate("", "", nil)
	assert.Equal(t, 1.0, rep.ContentPreservation)
	assert.Equal(t, 1.0, rep.Score)
}

func TestReportString(t *testing.T) {
	rep := Evaluate("a\nb", "a", nil)
	s := rep.String()
	assert.Contains(t, s, "quality score:")
	assert.Contains(t, s, "line delta: -1")
	assert.Contains(t, s, "[error]")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
}
