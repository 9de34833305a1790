package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRefNotFound is returned when neither a branch nor an object id matches a reference.
var ErrRefNotFound = errors.New("reference not found")

// PathNotFoundError is returned when a path does not resolve in a commit tree.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// Segment returns the final component of the missing path.
func (e *PathNotFoundError) Segment() string {
	p := strings.TrimRight(e.Path, "/")
	if idx := strings.LastIndexByte(p, '/'); idx != -1 {
		return p[idx+1:]
	}
	return p
}

// ObjectReadError wraps an object store failure. These are not retried:
// the store is local and a corrupt or missing object fails the same way twice.
type ObjectReadError struct {
	Op  string
	Err error
}

func (e *ObjectReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ObjectReadError) Unwrap() error {
	return e.Err
}

func readErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ObjectReadError{Op: op, Err: err}
}

// IsNotFound reports whether err should surface as a not-found response.
func IsNotFound(err error) bool {
	var pathErr *PathNotFoundError
	return errors.Is(err, ErrRefNotFound) || errors.As(err, &pathErr)
}
