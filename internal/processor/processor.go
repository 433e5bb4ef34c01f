// Package processor drives gridfix runs: file discovery, per-file
// transformation according to the configured mode, parallel execution
// and result aggregation. The core pipeline stays pure; all I/O and
// logging happen here.
package processor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gridfix/internal/discover"
	"gridfix/internal/markdown"
	"gridfix/internal/output"
	"gridfix/internal/quality"
	"gridfix/internal/repair"
	"gridfix/internal/tables"
)

// Mode selects what a run transforms.
type Mode string

const (
	// ModeSafe normalizes pipe tables only.
	ModeSafe Mode = "safe"
	// ModeDiagram repairs box-and-arrow diagrams.
	ModeDiagram Mode = "diagram"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSafe, ModeDiagram:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want safe or diagram)", s)
}

// Exit codes for a processing run.
const (
	ExitOK          = 0
	ExitCheckFailed = 1
)

// Options configures one run. It is the merge of .gridfix.yaml
// settings and command-line flags.
type Options struct {
	Mode             Mode
	Fences           bool
	Check            bool
	Write            bool
	Report           bool
	Extensions       []string
	RespectGitignore bool
	MaxFileSize      int64
	Workers          int
	BoxSanityWidth   int
}

// Result is the outcome for a single file.
type Result struct {
	Path       string
	Changed    bool
	Skipped    bool
	SkipReason string
	Err        error
	// Diff holds a unified diff preview in check mode.
	Diff string
	// Quality holds the diagnostic report when requested.
	Quality *quality.Report
	// Output is the transformed document.
	Output string
}

// Processor applies the configured transformation to files.
type Processor struct {
	opts Options
	log  *zap.Logger
	diff *output.DiffEngine
}

// New builds a Processor. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Processor {
	if opts.Mode == "" {
		opts.Mode = ModeSafe
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".md", ".markdown"}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{opts: opts, log: log, diff: output.NewDiffEngine()}
}

// Transform applies the configured mode to one document.
func (p *Processor) Transform(content string) string {
	out := content
	if p.opts.Fences {
		out = markdown.RepairFences(out)
	}
	switch p.opts.Mode {
	case ModeDiagram:
		out = markdown.TransformBlocks(out, func(lines []string) []string {
			return repair.LinesOptions(lines, repair.Options{
				BoxSanityWidth: p.opts.BoxSanityWidth,
			})
		})
	default:
		out = markdown.TransformBlocks(out, tables.Normalize)
	}
	return out
}

// ProcessFile transforms one file. In write mode a changed file is
// rewritten in place; check mode never writes.
func (p *Processor) ProcessFile(path string) Result {
	res := Result{Path: path}

	if p.opts.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			res.Err = fmt.Errorf("stat %s: %w", path, err)
			return res
		}
		if info.Size() > p.opts.MaxFileSize {
			res.Skipped = true
			res.SkipReason = fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), p.opts.MaxFileSize)
			return res
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}
	content := string(raw)
	processed := p.Transform(content)
	res.Output = processed
	res.Changed = processed != content

	if res.Changed && p.opts.Check {
		res.Diff = output.Unified(path, p.diff.Compare(content, processed))
	}
	if p.opts.Report {
		rep := quality.Evaluate(content, processed, p.Transform)
		res.Quality = &rep
	}
	if res.Changed && p.opts.Write && !p.opts.Check {
		if err := os.WriteFile(path, []byte(processed), 0o644); err != nil {
			res.Err = fmt.Errorf("write %s: %w", path, err)
		}
	}
	return res
}

// Run processes every matching file under paths in parallel. It
// returns the per-file results and the process exit code: non-zero
// when any file errored or when check mode found files needing fixes.
func (p *Processor) Run(ctx context.Context, paths []string) ([]Result, int, error) {
	runID := uuid.NewString()
	log := p.log.With(zap.String("run_id", runID))

	finder := discover.NewFinder(p.opts.Extensions, p.opts.RespectGitignore)
	files, err := finder.Discover(paths)
	if err != nil {
		return nil, ExitCheckFailed, err
	}
	if len(files) == 0 {
		log.Info("no matching files found",
			zap.Strings("paths", paths),
			zap.String("extensions", strings.Join(p.opts.Extensions, ",")))
		return nil, ExitOK, nil
	}
	log.Info("processing files",
		zap.Int("count", len(files)),
		zap.Int("workers", p.opts.Workers),
		zap.String("mode", string(p.opts.Mode)))

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.ProcessFile(path)
			switch {
			case results[i].Err != nil:
				log.Error("file failed", zap.String("path", path), zap.Error(results[i].Err))
			case results[i].Skipped:
				log.Info("file skipped", zap.String("path", path), zap.String("reason", results[i].SkipReason))
			default:
				log.Debug("file processed", zap.String("path", path), zap.Bool("changed", results[i].Changed))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, ExitCheckFailed, err
	}

	code := ExitOK
	for i := range results {
		if results[i].Err != nil || (p.opts.Check && results[i].Changed) {
			code = ExitCheckFailed
		}
	}
	return results, code, nil
}

// Collect tallies results into run statistics.
func Collect(results []Result) output.Stats {
	var s output.Stats
	for i := range results {
		switch {
		case results[i].Err != nil:
			s.RecordError()
		case results[i].Skipped:
			s.RecordSkipped()
		case results[i].Changed:
			s.RecordModified()
		default:
			s.RecordUnchanged()
		}
	}
	return s
}
