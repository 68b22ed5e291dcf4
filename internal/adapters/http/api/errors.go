package api

import (
	"errors"

	"github.com/okian/flixdash/internal/adapters/catalog"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnknownPage   = errors.New("unknown page")
	ErrLimitExceeded = errors.New("limit exceeded")
)

// Error carries the failing operation and the error kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches the error kind as well as the wrapped chain.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewKind returns an Error of kind for op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap annotates err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

func isCatalogUnavailable(err error) bool {
	return errors.Is(err, catalog.ErrLoad)
}
