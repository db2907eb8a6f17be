package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ursbench/internal/corpus"
	"ursbench/internal/folds"
	"ursbench/internal/report"
	"ursbench/internal/runner"
	"ursbench/internal/store"
	"ursbench/internal/ui/live"
)

// runAndWrite is a test seam for executing a run.
var runAndWrite = runner.RunAndWrite

// runOutcome carries a run's results across the UI goroutine boundary.
type runOutcome struct {
	results runner.Results
	paths   runner.OutputPaths
	err     error
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .ursbench.yml)")
		corpusDir := flags.String("corpus", "", "Corpus directory (default: corpus.dir from config)")
		k := flags.Int("k", 0, "Number of folds (default: folds.count from config)")
		workers := flags.Int("workers", 0, "Worker pool size (default: generator.workers from config)")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live or plain")
		verbose := flags.Bool("verbose", false, "Plain per-document progress output")
		outputDir := flags.String("output-dir", "", "Override output directory")
		dbPath := flags.String("db", "", "Persist the run into a DuckDB file")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			return failf(stderr, "Run", err)
		}
		if len(cfg.Generator.Command) == 0 {
			fmt.Fprintln(stderr, "Run failed: no generator command configured (set generator.command)")
			return ExitError
		}

		dir, err := resolveCorpusDir(cfg, *corpusDir)
		if err != nil {
			return failf(stderr, "Run", err)
		}
		c, records, err := buildMetrics(cfg, dir)
		if err != nil {
			return failf(stderr, "Run", err)
		}
		corpusKey, err := store.CorpusKey(c)
		if err != nil {
			return failf(stderr, "Run", err)
		}
		assignment, err := folds.Assign(c, report.ScoresByID(records), foldParams(cfg, *k))
		if err != nil {
			return failf(stderr, "Run", err)
		}

		poolSize := cfg.Generator.Workers
		if *workers > 0 {
			poolSize = *workers
		}
		outDir := strings.TrimSpace(*outputDir)
		if outDir == "" {
			outDir = cfg.Generator.OutputDir
		}
		params := runner.Params{
			CorpusDir: dir,
			CorpusKey: corpusKey,
			Command:   cfg.Generator.Command,
			Workers:   poolSize,
			Timeout:   time.Duration(cfg.Generator.TimeoutSeconds) * time.Second,
			OutputDir: outDir,
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx := context.Background()
		var outcome runOutcome
		if decision.useLive {
			outcome = runWithLiveUI(ctx, c, assignment, params, stdout)
		} else {
			if *verbose {
				params.Observer = runner.NewVerboseObserver(stdout, poolSize)
			}
			outcome.results, outcome.paths, outcome.err = runAndWrite(ctx, c, assignment, params)
		}
		if outcome.err != nil {
			return failf(stderr, "Run", outcome.err)
		}

		results, paths := outcome.results, outcome.paths
		fmt.Fprintf(stdout, "Run %s completed: %d/%d passed (%.1f%%)\n",
			results.RunID, results.Summary.Passed, results.Summary.Documents,
			results.Summary.PassRate*100)
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		fmt.Fprintf(stdout, "Folds: %s\n", paths.FoldsPath())

		if *dbPath != "" {
			if err := persistRun(ctx, *dbPath, dir, corpusKey, records, assignment, results); err != nil {
				return failf(stderr, "Run", err)
			}
			fmt.Fprintf(stdout, "Persisted run %s to %s\n", results.RunID, *dbPath)
		}
		return ExitOK
	}
}

// runWithLiveUI executes a run behind the Bubble Tea live UI.
func runWithLiveUI(ctx context.Context, c *corpus.Corpus, assignment *folds.Assignment, params runner.Params, stdout io.Writer) runOutcome {
	controller := live.NewController()
	params.Observer = controller

	done := make(chan runOutcome, 1)
	go func() {
		var outcome runOutcome
		outcome.results, outcome.paths, outcome.err = runAndWrite(ctx, c, assignment, params)
		controller.Close()
		done <- outcome
	}()

	model := live.NewModel(controller.Events(), live.Options{})
	program := tea.NewProgram(model, tea.WithOutput(stdout))
	if _, err := program.Run(); err != nil {
		outcome := <-done
		if outcome.err == nil {
			outcome.err = fmt.Errorf("live ui: %w", err)
		}
		return outcome
	}
	return <-done
}

// persistRun ingests the corpus, folds and run into a DuckDB file.
func persistRun(ctx context.Context, dbPath, dir, corpusKey string, records []report.DocumentMetrics, assignment *folds.Assignment, results runner.Results) error {
	db, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := store.IngestCorpus(ctx, db, dir, corpusKey, records); err != nil {
		return err
	}
	if err := store.IngestFolds(ctx, db, corpusKey, assignment); err != nil {
		return err
	}
	record := store.RunRecord{
		RunID:      results.RunID,
		CorpusKey:  corpusKey,
		Command:    results.Command,
		Workers:    results.Workers,
		StartedAt:  results.StartedAt,
		FinishedAt: results.FinishedAt,
	}
	return store.IngestRun(ctx, db, record, results.Results)
}
