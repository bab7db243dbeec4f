// Package errs contains sentinel errors shared across repository, service
// and HTTP layers for stable status mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication. The message is
	// deliberately generic so callers cannot probe which part failed.
	ErrUnauthorized = errors.New("unable to authenticate")

	// ErrEmailTaken indicates a unique email constraint violation.
	ErrEmailTaken = errors.New("email already in use")
)
