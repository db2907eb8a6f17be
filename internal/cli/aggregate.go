package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"

	"ursbench/internal/aggregate"
	"ursbench/internal/corpus"
	"ursbench/internal/report"
	"ursbench/internal/spec"
	"ursbench/internal/store"
)

// aggregateParams builds statistics parameters from the config.
func aggregateParams(cfg spec.Config) aggregate.Params {
	return aggregate.Params{
		BootstrapIterations: cfg.Statistics.BootstrapIterations,
		BootstrapSeed:       cfg.Statistics.BootstrapSeed,
		Alpha:               cfg.Statistics.Alpha,
		BaselineSuccessRate: cfg.Statistics.BaselineSuccessRate,
	}
}

// runAggregate builds the handler for the aggregate command.
func runAggregate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .ursbench.yml)")
		resultsPath := flags.String("results", "", "Path to a results.json file")
		comparePath := flags.String("compare", "", "Second results file for a paired comparison")
		groupBy := flags.String("group-by", "", "Group metrics by a document attribute (category)")
		corpusDir := flags.String("corpus", "", "Corpus directory for --group-by lookups")
		baseline := flags.Float64("baseline", math.NaN(), "Baseline success rate for a one-sample t-test")
		dbPath := flags.String("db", "", "Persist the report into a DuckDB file")
		runID := flags.String("run-id", "", "Run id to attach when persisting")
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
		if strings.TrimSpace(*resultsPath) == "" {
			fmt.Fprintln(stderr, "Missing --results")
			return ExitUsage
		}
		if *comparePath != "" && *groupBy != "" {
			fmt.Fprintln(stderr, "--compare and --group-by are mutually exclusive")
			return ExitUsage
		}

		outFormat, err := report.ParseFormat(*format)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			return failf(stderr, "Aggregate", err)
		}
		params := aggregateParams(cfg)
		if !math.IsNaN(*baseline) {
			rate := *baseline
			params.BaselineSuccessRate = &rate
		}

		results, err := aggregate.LoadResults(*resultsPath)
		if err != nil {
			return failf(stderr, "Aggregate", err)
		}

		var rep *aggregate.Report
		switch {
		case *comparePath != "":
			other, err := aggregate.LoadResults(*comparePath)
			if err != nil {
				return failf(stderr, "Aggregate", err)
			}
			rep, err = aggregate.Compare(results, other, *comparePath, params)
			if err != nil {
				return failf(stderr, "Aggregate", err)
			}
		case *groupBy != "":
			groupOf, err := groupLookup(cfg, *groupBy, *corpusDir)
			if err != nil {
				return failf(stderr, "Aggregate", err)
			}
			rep, err = aggregate.AggregateGrouped(results, *groupBy, groupOf, params)
			if err != nil {
				return failf(stderr, "Aggregate", err)
			}
		default:
			rep, err = aggregate.Aggregate(results, params)
			if err != nil {
				return failf(stderr, "Aggregate", err)
			}
		}

		rendered, err := report.RenderAggregate(rep, outFormat)
		if err != nil {
			return failf(stderr, "Aggregate", err)
		}
		fmt.Fprint(stdout, rendered)

		if *dbPath != "" {
			ctx := context.Background()
			db, err := store.Open(ctx, *dbPath)
			if err != nil {
				return failf(stderr, "Aggregate", err)
			}
			defer db.Close()
			key, err := store.IngestReport(ctx, db, *runID, rep)
			if err != nil {
				return failf(stderr, "Aggregate", err)
			}
			fmt.Fprintf(stdout, "Persisted report %s to %s\n", key, *dbPath)
		}
		return ExitOK
	}
}

// groupLookup returns a document attribute lookup for grouped
// aggregation.
func groupLookup(cfg spec.Config, attr, corpusDir string) (func(documentID string) (string, bool), error) {
	if attr != "category" {
		return nil, fmt.Errorf("unsupported --group-by attribute %q (expected category)", attr)
	}
	dir, err := resolveCorpusDir(cfg, corpusDir)
	if err != nil {
		return nil, err
	}
	c, err := corpus.Load(dir, cfg.Corpus.FilePattern)
	if err != nil {
		return nil, err
	}
	return func(documentID string) (string, bool) {
		doc, ok := c.ByID(documentID)
		if !ok {
			return "", false
		}
		return string(doc.Category), true
	}, nil
}
