// Package service provides the core dashboard service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/okian/flixdash/internal/adapters/catalog"
	"github.com/okian/flixdash/internal/adapters/export"
	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/pages"
	"github.com/okian/flixdash/pkg/logger"
	"github.com/okian/flixdash/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrUnknownPage = errors.New("unknown page")
)

// ExportAll selects every page in Export.
const ExportAll = "all"

// Service serves dashboard pages from the catalog snapshot.
type Service struct {
	mu sync.RWMutex

	store     catalog.Store
	ownsStore bool

	// Configuration
	dataPath string
	watch    bool

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the catalog file path.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithWatch reloads the catalog when the file changes.
func WithWatch(enabled bool) Option {
	return func(s *Service) {
		s.watch = enabled
	}
}

// WithStore uses an existing store instead of building one from the data
// path. The caller keeps ownership and closes it.
func WithStore(store catalog.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath: "data/netflix_titles.csv",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the catalog store and performs the initial load. A load
// failure is returned and leaves the service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...", logger.String("data_path", s.dataPath), logger.Bool("watch", s.watch))

	if s.store == nil {
		store, err := catalog.NewFileStore(s.dataPath,
			catalog.WithWatch(s.watch),
			catalog.WithLogger(s.logger.Named("catalog")),
		)
		if err != nil {
			return fmt.Errorf("open catalog store: %w", err)
		}
		s.store = store
		s.ownsStore = true
	}

	table, err := s.store.Get(ctx)
	if err != nil {
		if s.ownsStore {
			_ = s.store.Close()
			s.store = nil
			s.ownsStore = false
		}
		return fmt.Errorf("initial catalog load: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "dashboard service started", logger.Int("rows", table.Len()))
	return nil
}

// Stop releases the store if the service created it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping dashboard service...")
	if s.ownsStore {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing catalog store", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) snapshot(ctx context.Context) (*model.Table, error) {
	s.mu.RLock()
	store, started := s.store, s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	return store.Get(ctx)
}

// compute runs one page aggregator against the current snapshot.
func compute[T any](ctx context.Context, s *Service, page string, fn func(*model.Table) T) (T, error) {
	var zero T
	table, err := s.snapshot(ctx)
	if err != nil {
		metrics.RecordPageError(page)
		return zero, err
	}
	start := time.Now()
	out := fn(table)
	metrics.RecordPageComputeLatency(page, float64(time.Since(start).Microseconds())/1000)
	return out, nil
}

// Dataset returns the dataset page.
func (s *Service) Dataset(ctx context.Context) (pages.DatasetPage, error) {
	return compute(ctx, s, pages.Slug(pages.NameDataset), pages.Dataset)
}

// EDA returns the exploratory analysis page.
func (s *Service) EDA(ctx context.Context) (pages.EDAPage, error) {
	return compute(ctx, s, pages.Slug(pages.NameEDA), pages.EDA)
}

// Visualization returns the charts page.
func (s *Service) Visualization(ctx context.Context) (pages.VisualizationPage, error) {
	return compute(ctx, s, pages.Slug(pages.NameVisualization), pages.Visualization)
}

// Recency returns the recency page.
func (s *Service) Recency(ctx context.Context) (pages.RecencyPage, error) {
	return compute(ctx, s, pages.Slug(pages.NameRecency), pages.Recency)
}

// Export writes the aggregates of page, or of every page for "all" or "",
// as an xlsx workbook.
func (s *Service) Export(ctx context.Context, page string, w io.Writer) error {
	selected, err := exportPages(page)
	if err != nil {
		return err
	}

	var sheets []export.Sheet
	for _, name := range selected {
		more, err := s.sheets(ctx, name)
		if err != nil {
			return err
		}
		sheets = append(sheets, more...)
	}
	if err := export.Write(w, sheets...); err != nil {
		return err
	}

	label := ExportAll
	if len(selected) == 1 {
		label = pages.Slug(selected[0])
	}
	metrics.RecordExport(label)
	return nil
}

func exportPages(page string) ([]string, error) {
	page = strings.TrimSpace(page)
	if page == "" || strings.EqualFold(page, ExportAll) {
		return pages.Names(), nil
	}
	name, ok := pages.Lookup(page)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, page)
	}
	return []string{name}, nil
}

func (s *Service) sheets(ctx context.Context, name string) ([]export.Sheet, error) {
	switch name {
	case pages.NameDataset:
		p, err := s.Dataset(ctx)
		return export.DatasetSheets(p), err
	case pages.NameEDA:
		p, err := s.EDA(ctx)
		return export.EDASheets(p), err
	case pages.NameVisualization:
		p, err := s.Visualization(ctx)
		return export.VisualizationSheets(p), err
	case pages.NameRecency:
		p, err := s.Recency(ctx)
		return export.RecencySheets(p), err
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPage, name)
}

// Invalidate drops the cached snapshot; the next page request reloads the
// catalog file.
func (s *Service) Invalidate(ctx context.Context) error {
	s.mu.RLock()
	store, started := s.store, s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	store.Invalidate(ctx)
	s.logger.Info(ctx, "catalog invalidated")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"data_path": s.dataPath,
		"watch":     s.watch,
	}
	if !s.started {
		return stats
	}

	table, err := s.store.Get(context.Background())
	if err != nil {
		stats["catalog_error"] = err.Error()
		return stats
	}
	info := table.Info()
	stats["rows"] = table.Len()
	stats["rows_read"] = info.RowsRead
	stats["rows_dropped"] = info.RowsDropped
	stats["date_parse_failures"] = info.DateParseFailures
	stats["columns_dropped"] = info.ColumnsDropped
	stats["loaded_at"] = info.LoadedAt
	stats["source_path"] = info.SourcePath
	stats["load_duration_ms"] = info.LoadDurationMillis
	return stats
}
