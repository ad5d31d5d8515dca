// Package main is the entry point for the gridview table viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/gridview/internal/app"
	"github.com/dshills/gridview/internal/sorting"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 2
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool) {
	opts := app.Options{Watch: true}
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to TOML configuration file (shorthand)")
	flag.IntVar(&opts.WindowLength, "window", 0, "Maximum visible rows (overrides table.windowLength)")
	flag.StringVar(&opts.Algorithm, "algorithm", "", "Sort algorithm: bucket or partition")
	flag.StringVar(&opts.Format, "format", "", "Data format: json, jsonl, csv or tsv (default: from extension)")
	flag.StringVar(&opts.JSONPath, "path", "", "Path to the record array inside a JSON document")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write the log to this file")
	flag.BoolVar(&opts.Watch, "watch", true, "Reload the configuration file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gridview - terminal table viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gridview [options] FILE\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  /  search   Esc  clear search   1-9  sort by column   0  clear sort\n")
		fmt.Fprintf(os.Stderr, "  j k arrows PgUp PgDn Home End  scroll   h l  pan   c  clear selection   q  quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gridview people.csv\n")
		fmt.Fprintf(os.Stderr, "  gridview -config gridview.toml -algorithm partition orders.json\n")
		fmt.Fprintf(os.Stderr, "  gridview -format json -path data.items response.txt\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("gridview %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.Algorithm != "" {
		if _, err := sorting.ParseAlgorithm(opts.Algorithm); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return opts, false
		}
	}
	switch strings.ToLower(opts.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, false
	}
	if opts.WindowLength < 0 {
		fmt.Fprintf(os.Stderr, "Error: -window must not be negative\n")
		return opts, false
	}

	if flag.NArg() != 1 {
		flag.Usage()
		return opts, false
	}
	opts.DataPath = flag.Arg(0)
	return opts, true
}
