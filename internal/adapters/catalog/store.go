package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/pkg/logger"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("catalog store closed")

// Store provides the current catalog snapshot.
type Store interface {
	// Get returns the cached snapshot, loading it on first use or after an
	// invalidation. Failed loads are not cached.
	Get(ctx context.Context) (*model.Table, error)
	// Invalidate drops the cached snapshot so the next Get reloads.
	Invalidate(ctx context.Context)
	Close() error
}

// FileStore memoizes the snapshot of one catalog file.
type FileStore struct {
	path  string
	load  Loader
	log   logger.Logger
	watch bool

	// mu is held for the whole load, so concurrent Gets share one load.
	mu     sync.Mutex
	table  *model.Table
	closed bool

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
	done    chan struct{}
	once    sync.Once
}

var _ Store = (*FileStore)(nil)

// NewFileStore constructs a store for the catalog at path. Nothing is read
// until the first Get.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path: path,
		load: Load,
		log:  logger.NewNop(),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.watch {
		if err := s.startWatch(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get implements Store.Get.
func (s *FileStore) Get(ctx context.Context) (*model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.table != nil {
		return s.table, nil
	}

	table, err := s.load(ctx, s.path)
	if err != nil {
		s.log.Error(ctx, "catalog load failed", logger.String("path", s.path), logger.Error(err))
		return nil, err
	}
	info := table.Info()
	s.log.Info(ctx, "catalog loaded",
		logger.String("path", s.path),
		logger.Int("rows", table.Len()),
		logger.Int("rows_read", info.RowsRead),
		logger.Int("rows_dropped", info.RowsDropped),
		logger.Int("date_parse_failures", info.DateParseFailures),
		logger.Float64("duration_ms", info.LoadDurationMillis))
	s.table = table
	return table, nil
}

// Invalidate implements Store.Invalidate. Readers holding the previous
// snapshot keep using it.
func (s *FileStore) Invalidate(ctx context.Context) {
	s.mu.Lock()
	had := s.table != nil
	s.table = nil
	s.mu.Unlock()
	s.log.Debug(ctx, "catalog invalidated", logger.String("path", s.path), logger.Bool("had_snapshot", had))
}

// Close stops the watcher and makes further Gets fail.
func (s *FileStore) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
		s.wg.Wait()

		s.mu.Lock()
		s.closed = true
		s.table = nil
		s.mu.Unlock()
	})
	return err
}

func (s *FileStore) cached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table != nil
}
