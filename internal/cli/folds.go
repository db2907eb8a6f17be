package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"ursbench/internal/folds"
	"ursbench/internal/report"
	"ursbench/internal/spec"
)

// foldParams builds fold parameters from the config with an optional
// k override.
func foldParams(cfg spec.Config, k int) folds.Params {
	params := folds.Params{
		Count:    cfg.Folds.Count,
		TierLow:  cfg.Folds.TierLow,
		TierHigh: cfg.Folds.TierHigh,
	}
	if k > 0 {
		params.Count = k
	}
	return params
}

// runFolds builds the handler for the folds command.
func runFolds(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		format := flags.String("format", "table", "Output format: table, json or csv")
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

		outFormat, err := report.ParseFormat(*format)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			return failf(stderr, "Folds", err)
		}
		c, records, err := buildMetrics(cfg, *corpusDir)
		if err != nil {
			return failf(stderr, "Folds", err)
		}

		assignment, err := folds.Assign(c, report.ScoresByID(records), foldParams(cfg, *k))
		if err != nil {
			return failf(stderr, "Folds", err)
		}

		rendered, err := report.RenderFolds(assignment, outFormat)
		if err != nil {
			return failf(stderr, "Folds", err)
		}
		fmt.Fprint(stdout, rendered)
		return ExitOK
	}
}
