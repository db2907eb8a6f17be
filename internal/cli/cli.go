package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ursbench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"ursbench <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .ursbench.yml", []string{
		"ursbench init [--config <path>]",
	}, runInit),
	command("validate", "Validate .ursbench.yml", []string{
		"ursbench validate [--config <path>]",
	}, runValidate),
	command("metrics", "Score corpus complexity metrics", []string{
		"ursbench metrics [--corpus <dir>] [--format table|json|csv]",
	}, runMetrics),
	command("folds", "Assign stratified cross-validation folds", []string{
		"ursbench folds [--corpus <dir>] [--k <n>] [--format table|json|csv]",
	}, runFolds),
	command("run", "Execute the generator over fold test sets", []string{
		"ursbench run [--corpus <dir>] [--k <n>] [--workers <n>] [--ui auto|live|plain] [--db <file>]",
	}, runRun),
	command("ingest", "Persist corpus and folds into DuckDB", []string{
		"ursbench ingest --db <file> [--corpus <dir>] [--k <n>]",
	}, runIngest),
	command("aggregate", "Aggregate run results with bootstrap CIs", []string{
		"ursbench aggregate --results <file> [--baseline <rate>] [--compare <file>]",
		"ursbench aggregate --results <file> [--group-by category] [--db <file>] [--format table|json|csv]",
	}, runAggregate),
	command("serve", "Serve a results database over HTTP", []string{
		"ursbench serve <db.duckdb> [--addr <host:port>]",
	}, runServe),
}
