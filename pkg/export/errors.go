package export

import (
	"errors"
	"fmt"
)

// ErrCourseNotFound is the sentinel behind a NotFoundError for courses.
var ErrCourseNotFound = errors.New("course does not exist")

// NotFoundError reports a content item that could not be resolved.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrCourseNotFound
}

// IOError wraps a file-system failure while writing the bundle.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
