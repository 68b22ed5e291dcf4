package catalog

import "github.com/okian/flixdash/pkg/logger"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithWatch invalidates the cached snapshot whenever the source file is
// written, created, renamed or removed.
func WithWatch(enabled bool) Option {
	return func(s *FileStore) {
		s.watch = enabled
	}
}

// WithLoader replaces Load, mostly for tests.
func WithLoader(load Loader) Option {
	return func(s *FileStore) {
		if load != nil {
			s.load = load
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}
