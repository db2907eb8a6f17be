package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"ursbench/internal/report"
)

// runMetrics builds the handler for the metrics command.
func runMetrics(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .ursbench.yml)")
		corpusDir := flags.String("corpus", "", "Corpus directory (default: corpus.dir from config)")
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
			return failf(stderr, "Metrics", err)
		}
		_, records, err := buildMetrics(cfg, *corpusDir)
		if err != nil {
			return failf(stderr, "Metrics", err)
		}

		rendered, err := report.RenderDocumentMetrics(records, outFormat)
		if err != nil {
			return failf(stderr, "Metrics", err)
		}
		fmt.Fprint(stdout, rendered)
		return ExitOK
	}
}
