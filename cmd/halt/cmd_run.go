package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"haltbench/internal/config"
	"haltbench/internal/report"
	"haltbench/internal/runner"
	"haltbench/internal/store"
	"haltbench/internal/types"
)

var (
	runMode        string
	runProvider    string
	runModel       string
	runCategories  string
	runLite        bool
	runDryRun      bool
	runConcurrency int
	runFormat      string
	runOutputFile  string
	runWatch       bool
	runNoUI        bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark",
	Long: `Runs the benchmark against the configured provider.

Baseline mode makes one pass per item. Compare mode makes a second
pass with a verification-oriented system prompt and reports the score
delta. With --watch, the run repeats whenever the dataset directory
changes.`,
	RunE: runBenchmark,
}

func init() {
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "", "benchmark mode (baseline, compare)")
	runCmd.Flags().StringVarP(&runProvider, "provider", "p", "", "LLM provider to benchmark")
	runCmd.Flags().StringVar(&runModel, "model", "", "override the provider's default model")
	runCmd.Flags().StringVar(&runCategories, "categories", "", "comma-separated category filter")
	runCmd.Flags().BoolVar(&runLite, "lite", false, "cap each category at a handful of items")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "validate the dataset without provider calls")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "parallel provider calls")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "output format (console, json, markdown, html)")
	runCmd.Flags().StringVarP(&runOutputFile, "output", "o", "", "write the report to this file")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "re-run when the dataset directory changes")
	runCmd.Flags().BoolVar(&runNoUI, "no-ui", false, "disable the progress UI")
}

func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = runMode
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider.Name = runProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.Provider.Model = runModel
	}
	if cmd.Flags().Changed("categories") {
		cfg.Categories = strings.Split(runCategories, ",")
	}
	if cmd.Flags().Changed("lite") {
		cfg.LiteMode = runLite
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = runDryRun
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = runFormat
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.File = runOutputFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := runOnce(ctx, cfg); err != nil {
		return err
	}

	if runWatch {
		if cfg.DatasetPath == "" {
			return fmt.Errorf("--watch needs a dataset_path to watch")
		}
		return watchAndRerun(ctx, cfg)
	}
	return nil
}

func runOnce(ctx context.Context, cfg *config.Config) error {
	r, err := runner.New(cfg, logger)
	if err != nil {
		return err
	}

	var results *types.BenchmarkResults
	if runNoUI || cfg.DryRun {
		results, err = r.Run(ctx)
	} else {
		results, err = runWithProgress(ctx, r)
	}
	if err != nil {
		return err
	}

	if err := emitReport(cfg, results); err != nil {
		return err
	}

	if cfg.History.Enabled && !cfg.DryRun {
		if err := archiveRun(cfg, results); err != nil {
			logger.Warn("failed to archive run", zap.Error(err))
		}
	}
	return nil
}

func emitReport(cfg *config.Config, results *types.BenchmarkResults) error {
	format, err := types.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer()

	// Markdown destined for the terminal goes through glamour.
	if format == types.FormatMarkdown && cfg.Output.File == "" {
		md := report.Markdown(results)
		rendered, err := report.Preview(md)
		if err != nil {
			rendered = md
		}
		fmt.Println(rendered)
		return nil
	}

	return renderer.WriteFile(results, format, cfg.Output.File)
}

func archiveRun(cfg *config.Config, results *types.BenchmarkResults) error {
	s, err := store.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SaveRun(results)
}

// watchAndRerun blocks, re-running the benchmark whenever a dataset
// file changes. Events are debounced because editors fire several per
// save.
func watchAndRerun(ctx context.Context, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.DatasetPath); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.DatasetPath, err)
	}
	// Per-category subdirectories hold the actual item files.
	for _, cat := range types.AllCategories() {
		dir := filepath.Join(cfg.DatasetPath, strings.ToLower(string(cat)))
		_ = watcher.Add(dir)
	}

	fmt.Printf("Watching %s for changes (ctrl-c to stop)...\n", cfg.DatasetPath)

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(500*time.Millisecond, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-rerun:
			fmt.Println("Dataset changed, re-running...")
			if err := runOnce(ctx, cfg); err != nil {
				logger.Error("re-run failed", zap.Error(err))
			}
		}
	}
}
