// Command leshan-log is a tool for viewing and analyzing client event files.
//
// Event files are written by leshan-client when it runs with the -events
// flag or with event_log set in its configuration.
//
// Usage:
//
//	leshan-log <command> [flags] <file.elog>
//
// Commands:
//
//	view     View events in human-readable format
//	export   Export events to JSONL or CSV
//	filter   Filter events and write them to a new file
//	stats    Show statistics about the file
//
// Examples:
//
//	# View all events
//	leshan-log view client.elog
//
//	# View only notifications of the humidity object
//	leshan-log view -category notify -object 3304 client.elog
//
//	# Export to CSV
//	leshan-log export -format csv -o events.csv client.elog
//
//	# Keep the ticks of one instance
//	leshan-log filter -category tick -object 3303 -instance 0 -o ticks.elog client.elog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/LarsBremen/leshan/cmd/leshan-log/commands"
)

const usage = `leshan-log - Client Event Log Analyzer

Usage:
  leshan-log <command> [flags] <file.elog>

Commands:
  view     View events in human-readable format
  export   Export events to JSONL or CSV
  filter   Filter events and write them to a new file
  stats    Show statistics about the file

Use "leshan-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the selection flags shared by view and filter.
func filterFlags(fs *flag.FlagSet) *commands.FilterOptions {
	var opts commands.FilterOptions
	fs.StringVar(&opts.Endpoint, "endpoint", "", "Filter by endpoint name")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (read, execute, notify, tick, state, error)")
	fs.StringVar(&opts.Object, "object", "", "Filter by object ID")
	fs.StringVar(&opts.Instance, "instance", "", "Filter by instance ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return &opts
}

func parseArgs(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `leshan-log view - View events in human-readable format

Usage:
  leshan-log view [flags] <file.elog>

Flags:
`)
		fs.PrintDefaults()
	}
	opts := filterFlags(fs)
	path := parseArgs(fs, args)

	filter, err := opts.Build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `leshan-log export - Export events to JSONL or CSV

Usage:
  leshan-log export [flags] <file.elog>

Flags:
`)
		fs.PrintDefaults()
	}
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := parseArgs(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `leshan-log filter - Filter events and write them to a new file

Usage:
  leshan-log filter [flags] <file.elog>

Flags:
`)
		fs.PrintDefaults()
	}
	output := fs.String("o", "", "Output file (required)")
	opts := filterFlags(fs)
	path := parseArgs(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}
	opts.Output = *output

	n, err := commands.RunFilter(path, *opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `leshan-log stats - Show statistics about the file

Usage:
  leshan-log stats <file.elog>

`)
	}
	path := parseArgs(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
