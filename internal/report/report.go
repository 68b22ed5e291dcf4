// Package report prints the dashboard pages as plain-text tables, either
// computed from a local catalog file or fetched from a running dashboard.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/okian/flixdash/internal/adapters/catalog"
	"github.com/okian/flixdash/internal/domain/pages"
	"github.com/okian/flixdash/pkg/logger"
)

// Errors returned by Run.
var (
	ErrUnknownPage = errors.New("unknown page")
	ErrNoSource    = errors.New("either a data path or a base URL is required")
	ErrMismatch    = errors.New("remote pages differ from the local catalog")
)

// Run renders the selected pages to w.
func Run(ctx context.Context, cfg *Config, w io.Writer) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	defer func() { stats.Duration = time.Since(stats.StartTime) }()

	names, err := selectPages(cfg.Page)
	if err != nil {
		return stats, err
	}
	if cfg.DataPath == "" && cfg.BaseURL == "" {
		return stats, ErrNoSource
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	logger.Get().Info(ctx, "building report",
		logger.String("data_path", cfg.DataPath),
		logger.String("base_url", cfg.BaseURL),
		logger.String("page", cfg.Page))

	var local *Bundle
	if cfg.DataPath != "" {
		table, err := catalog.Load(ctx, cfg.DataPath)
		if err != nil {
			return stats, err
		}
		local = Compute(table)
	}

	if cfg.BaseURL == "" {
		render(w, local, names, limit)
		stats.PagesRendered = len(names)
		return stats, nil
	}

	if err := checkServiceHealth(ctx, cfg); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}
	remote, err := fetchPages(ctx, cfg, names, stats)
	if err != nil {
		return stats, err
	}
	render(w, remote, names, limit)
	stats.PagesRendered = len(names)

	if local != nil {
		diffs := Compare(local, remote, names)
		stats.Mismatches = len(diffs)
		for _, d := range diffs {
			logger.Get().Warn(ctx, "page mismatch", logger.String("detail", d))
		}
		if len(diffs) > 0 {
			return stats, fmt.Errorf("%w: %s", ErrMismatch, strings.Join(diffs, "; "))
		}
	}
	return stats, nil
}

// selectPages resolves a page flag to page names in navigation order.
func selectPages(page string) ([]string, error) {
	page = strings.TrimSpace(page)
	if page == "" || strings.EqualFold(page, AllPages) {
		return pages.Names(), nil
	}
	name, ok := pages.Lookup(page)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	return []string{name}, nil
}
