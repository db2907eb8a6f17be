package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ursbench/internal/folds"
	"ursbench/internal/report"
	"ursbench/internal/store"
)

// runIngest builds the handler for the ingest command.
func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .ursbench.yml)")
		corpusDir := flags.String("corpus", "", "Corpus directory (default: corpus.dir from config)")
		dbPath := flags.String("db", "", "DuckDB file to write")
		k := flags.Int("k", 0, "Also ingest a fold assignment with this many folds (0 to skip)")
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
		if strings.TrimSpace(*dbPath) == "" {
			fmt.Fprintln(stderr, "Missing --db")
			return ExitUsage
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			return failf(stderr, "Ingest", err)
		}
		dir, err := resolveCorpusDir(cfg, *corpusDir)
		if err != nil {
			return failf(stderr, "Ingest", err)
		}
		c, records, err := buildMetrics(cfg, dir)
		if err != nil {
			return failf(stderr, "Ingest", err)
		}
		corpusKey, err := store.CorpusKey(c)
		if err != nil {
			return failf(stderr, "Ingest", err)
		}

		ctx := context.Background()
		db, err := store.Open(ctx, *dbPath)
		if err != nil {
			return failf(stderr, "Ingest", err)
		}
		defer db.Close()

		if _, err := store.IngestCorpus(ctx, db, dir, corpusKey, records); err != nil {
			return failf(stderr, "Ingest", err)
		}
		fmt.Fprintf(stdout, "Ingested corpus %s (%d documents)\n", corpusKey, c.Len())

		if *k > 0 {
			assignment, err := folds.Assign(c, report.ScoresByID(records), foldParams(cfg, *k))
			if err != nil {
				return failf(stderr, "Ingest", err)
			}
			if err := store.IngestFolds(ctx, db, corpusKey, assignment); err != nil {
				return failf(stderr, "Ingest", err)
			}
			fmt.Fprintf(stdout, "Ingested fold assignment k=%d\n", assignment.K)
		}
		return ExitOK
	}
}
