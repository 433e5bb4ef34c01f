package processor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const brokenDiagram = "# Title\n\n┌──┐\n│Hello│\n└──┘\n"
const fixedDiagram = "# Title\n\n┌─────┐\n│Hello│\n└─────┘\n"

func TestTransformDiagramMode(t *testing.T) {
	p := New(Options{Mode: ModeDiagram}, nil)
	assert.Equal(t, fixedDiagram, p.Transform(brokenDiagram))
}

func TestTransformSafeModeLeavesDiagramsAlone(t *testing.T) {
	p := New(Options{Mode: ModeSafe}, nil)
	assert.Equal(t, brokenDiagram, p.Transform(brokenDiagram))
}

func TestTransformSafeModeNormalizesTables(t *testing.T) {
	doc := "| A | B |\n|---|---|\n| x | long |\n"
	p := New(Options{Mode: ModeSafe}, nil)
	got := p.Transform(doc)
	assert.Contains(t, got, "| A   | B    |")
}

func TestTransformSkipsFencedDiagrams(t *testing.T) {
	doc := "```\n┌──┐\n│Hello│\n└──┘\n```\n"
	p := New(Options{Mode: ModeDiagram}, nil)
	assert.Equal(t, doc, p.Transform(doc))
}

func TestTransformRepairsFencesWhenEnabled(t *testing.T) {
	doc := "```go\ncode"
	p := New(Options{Mode: ModeSafe, Fences: true}, nil)
	assert.Equal(t, "```go\ncode\n```", p.Transform(doc))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("diagram")
	require.NoError(t, err)
	assert.Equal(t, ModeDiagram, m)

	_, err = ParseMode("bogus")
	assert.Error(t, err)
}

func TestRunDryRunDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", brokenDiagram)

	p := New(Options{Mode: ModeDiagram}, nil)
	results, code, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, brokenDiagram, string(data))
}

func TestRunWriteMode(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", brokenDiagram)

	p := New(Options{Mode: ModeDiagram, Write: true}, nil)
	_, code, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixedDiagram, string(data))
}

func TestRunCheckModeExitCode(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md", brokenDiagram)

	p := New(Options{Mode: ModeDiagram, Check: true, Write: true}, nil)
	results, code, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, ExitCheckFailed, code)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Diff)

	// Check mode never writes, even with write enabled.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, brokenDiagram, string(data))
}

func TestRunCheckModeCleanTree(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "doc.md", fixedDiagram)

	p := New(Options{Mode: ModeDiagram, Check: true}, nil)
	results, code, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	require.Len(t, results, 1)
	assert.False(t, results[0].Changed)
}

func TestRunSkipsOversizeFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "doc.md", brokenDiagram)

	p := New(Options{Mode: ModeDiagram, MaxFileSize: 4}, nil)
	results, code, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
	assert.NotEmpty(t, results[0].SkipReason)
}

func TestRunNoMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "notes.txt", "plain")

	p := New(Options{Mode: ModeSafe}, nil)
	results, code, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	assert.Empty(t, results)
}

func TestRunManyFilesInParallel(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeDoc(t, dir, string(rune('a'+i))+".md", brokenDiagram)
	}

	p := New(Options{Mode: ModeDiagram, Workers: 4}, nil)
	results, code, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	assert.Len(t, results, 20)
	for _, r := range results {
		assert.True(t, r.Changed, r.Path)
		assert.Equal(t, fixedDiagram, r.Output, r.Path)
	}
}

func TestRunQualityReport(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "doc.md", brokenDiagram)

	p := New(Options{Mode: ModeDiagram, Report: true}, nil)
	results, _, err := p.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Quality)
	assert.Equal(t, 1.0, results[0].Quality.ContentPreservation)
	assert.True(t, results[0].Quality.Idempotent)
}

func TestCollect(t *testing.T) {
	results := []Result{
		{Changed: true},
		{},
		{Skipped: true},
		{Err: os.ErrPermission},
	}
	s := Collect(results)
	assert.Equal(t, 1, s.Modified)
	assert.Equal(t, 1, s.Unchanged)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 4, s.Total, "skipped files count toward the total like errored ones")
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "doc.md", fixedDiagram)

	p := New(Options{Mode: ModeDiagram}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, []string{dir})
	}()

	// Give the watcher a moment, then trigger one event and shut down.
	time.Sleep(50 * time.Millisecond)
	writeDoc(t, dir, "doc.md", brokenDiagram)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
