package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gridfix/internal/config"
	"gridfix/internal/discover"
	"gridfix/internal/output"
	"gridfix/internal/processor"
)

var (
	// Global flags
	verbose     bool
	modeFlag    string
	fences      bool
	all         bool
	check       bool
	write       bool
	extFlag     string
	noGitignore bool
	maxSize     int64
	report      bool
	watchMode   bool
	workers     int

	// Logger
	logger *zap.Logger

	// Exit code carried out of RunE so cobra error handling stays intact.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "gridfix [paths...]",
	Short: "gridfix repairs ASCII box-and-arrow diagrams in Markdown",
	Long: `gridfix finds box-and-arrow diagrams drawn with Unicode box
characters in Markdown files and repairs their geometry: boxes grow to
fit their text, nested boxes regain margins, arrows snap to box edges
and connection lines are re-anchored.

Code fences, inline code spans and regions between gridfix:ignore
markers are never touched. Anything the detector is not fully
confident about is left exactly as it was.

Modes:
  safe     normalize Markdown pipe tables only (default)
  diagram  detect and repair ASCII diagrams

By default gridfix dry-runs and reports the files it would change.
Use --write to rewrite files in place, or --check to fail (exit 1)
when any file needs fixing.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "Processing mode: safe or diagram")
	rootCmd.Flags().BoolVar(&fences, "fences", false, "Repair unclosed and mismatched code fences")
	rootCmd.Flags().BoolVar(&all, "all", false, "Shorthand for --mode diagram --fences")
	rootCmd.Flags().BoolVar(&check, "check", false, "Report files needing fixes and exit 1; never write")
	rootCmd.Flags().BoolVar(&write, "write", false, "Rewrite changed files in place")
	rootCmd.Flags().StringVar(&extFlag, "ext", "", "Comma-separated file extensions (default md,markdown)")
	rootCmd.Flags().BoolVar(&noGitignore, "no-gitignore", false, "Do not honor .gitignore during discovery")
	rootCmd.Flags().Int64Var(&maxSize, "max-size", 0, "Skip files larger than this many bytes")
	rootCmd.Flags().BoolVar(&report, "report", false, "Print a quality report per changed file")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep running and reprocess files as they change")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Parallel file workers (default one per CPU)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// buildOptions merges the discovered config file with command-line
// flags; flags win.
func buildOptions(cmd *cobra.Command) (processor.Options, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return processor.Options{}, fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, err := config.Discover(cwd)
	if err != nil {
		return processor.Options{}, err
	}

	opts := processor.Options{
		Fences:           fences,
		Check:            check,
		Write:            write || cfg.Write,
		Report:           report,
		Extensions:       cfg.Extensions,
		RespectGitignore: cfg.GitignoreEnabled(),
		MaxFileSize:      cfg.MaxFileSize,
		Workers:          cfg.Workers,
		BoxSanityWidth:   cfg.BoxSanityWidth,
	}

	mode := cfg.Mode
	if cmd.Flags().Changed("mode") {
		mode = modeFlag
	}
	if all {
		mode = string(processor.ModeDiagram)
		opts.Fences = true
	}
	opts.Mode, err = processor.ParseMode(mode)
	if err != nil {
		return processor.Options{}, err
	}

	if cmd.Flags().Changed("ext") {
		exts, err := discover.ParseExtensions(extFlag)
		if err != nil {
			return processor.Options{}, err
		}
		opts.Extensions = exts
	}
	if noGitignore {
		opts.RespectGitignore = false
	}
	if cmd.Flags().Changed("max-size") {
		opts.MaxFileSize = maxSize
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = workers
	}
	return opts, nil
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	p := processor.New(opts, logger)

	results, code, err := p.Run(ctx, args)
	if err != nil {
		return err
	}
	printResults(results, opts)
	exitCode = code

	if watchMode {
		return p.Watch(ctx, args)
	}
	return nil
}

func printResults(results []processor.Result, opts processor.Options) {
	for i := range results {
		r := &results[i]
		switch {
		case r.Err != nil:
			fmt.Fprintf(os.Stderr, "error: %v\n", r.Err)
		case r.Skipped:
			fmt.Fprintf(os.Stderr, "skipped %s: %s\n", r.Path, r.SkipReason)
		case r.Changed && opts.Check:
			fmt.Printf("needs fixing: %s\n", r.Path)
			if r.Diff != "" {
				fmt.Println(r.Diff)
			}
		case r.Changed && opts.Write:
			fmt.Printf("fixed: %s\n", r.Path)
		case r.Changed:
			fmt.Printf("would fix: %s (use --write)\n", r.Path)
		}
		if r.Quality != nil && r.Changed {
			fmt.Printf("%s: %s", r.Path, r.Quality)
		}
	}
	fmt.Print(output.Summary(processor.Collect(results)))
}
