package catalog

import (
	"errors"
	"fmt"
)

// Sentinel kinds for catalog errors.
var (
	ErrLoad          = errors.New("catalog load failed")
	ErrEmptyFile     = errors.New("catalog file has no header")
	ErrMalformed     = errors.New("malformed catalog record")
	ErrMissingColumn = errors.New("required column missing")
)

// LoadError reports a failure to produce a catalog snapshot. It matches
// ErrLoad with errors.Is and unwraps to the underlying cause.
type LoadError struct {
	Op   string // read, clean, materialize
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

func loadError(op, path string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Op: op, Path: path, Err: err}
}
