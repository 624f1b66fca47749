package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist: a page, a
	// cache entry, or a heading/extension inside a document tree.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the locally recorded page version is behind the
	// remote version on write.
	ErrConflict = errors.New("version conflict")

	// ErrMalformedTree indicates a structurally invalid ADF document, such
	// as a non-doc root or an extension wrapper missing required attributes.
	ErrMalformedTree = errors.New("malformed document tree")

	// ErrNotConfigured indicates the remote service credentials are missing.
	ErrNotConfigured = errors.New("remote service not configured")
)
