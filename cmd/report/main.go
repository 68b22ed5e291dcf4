package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/flixdash/internal/report"
	"github.com/okian/flixdash/pkg/logger"
)

func main() {
	var (
		dataPath = flag.String("data", "data/netflix_titles.csv", "Catalog CSV to compute the pages from")
		baseURL  = flag.String("url", "", "Base URL of a running dashboard")
		page     = flag.String("page", report.AllPages, "Page to print")
		limit    = flag.Int("limit", report.DefaultLimit, "Dataset rows to print")
		workers  = flag.Int("workers", report.DefaultWorkers, "Concurrent page fetches")
		timeout  = flag.Duration("timeout", report.DefaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		report.ShowHelp(os.Stdout)
		return
	}

	if err := report.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &report.Config{
		DataPath: *dataPath,
		BaseURL:  *baseURL,
		Page:     *page,
		Limit:    *limit,
		Workers:  *workers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	stats, err := report.Run(ctx, cfg, os.Stdout)
	if err != nil {
		logger.Get().Error(ctx, "report failed", logger.Error(err))
		os.Exit(1)
	}
	logger.Get().Debug(ctx, "report completed",
		logger.Int("pages", stats.PagesRendered),
		logger.Int("fetched", stats.PagesFetched),
		logger.Duration("duration", stats.Duration))
}
