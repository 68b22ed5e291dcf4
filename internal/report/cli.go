package report

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/flixdash/pkg/logger"
)

// SetupLogging sends structured logs to stderr so stdout carries only the
// report. verbose lowers the level to debug.
func SetupLogging(verbose bool) error {
	if err := logger.InitWithOptions(logger.FormatText, os.Stderr); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the report tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Netflix Dashboard Report
========================

Prints the dashboard pages as plain-text tables.

Usage:
  go run ./cmd/report [options]

Options:
  -data string
        Catalog CSV to compute the pages from (default "data/netflix_titles.csv")
  -url string
        Base URL of a running dashboard; pages are fetched from its API
  -page string
        Page to print: dataset, eda, visualisasi, rfm or all (default "all")
  -limit int
        Dataset rows to print (default 20)
  -workers int
        Concurrent page fetches in -url mode (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

With both -data and -url the fetched pages are compared against the
local computation and the tool exits non-zero on any difference.

Examples:
  go run ./cmd/report -page eda
  go run ./cmd/report -url http://localhost:8501 -data "" -page rfm
  go run ./cmd/report -url http://localhost:8501
`)
}
