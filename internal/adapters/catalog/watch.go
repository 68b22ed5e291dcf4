package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/flixdash/pkg/logger"
	"github.com/okian/flixdash/pkg/metrics"
)

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// startWatch watches the file's directory rather than the file, so editors
// that replace the file by rename are still seen.
func (s *FileStore) startWatch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog watch: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("catalog watch %s: %w", dir, err)
	}
	s.watcher = w

	target := filepath.Join(dir, filepath.Base(s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.watchLoop(target)
	}()
	return nil
}

func (s *FileStore) watchLoop(target string) {
	ctx := context.Background()
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || ev.Op&watchedOps == 0 {
				continue
			}
			s.log.Info(ctx, "catalog file changed", logger.String("path", ev.Name), logger.String("op", ev.Op.String()))
			metrics.RecordCatalogInvalidation("watch")
			s.Invalidate(ctx)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn(ctx, "catalog watcher error", logger.Error(err))
		}
	}
}
