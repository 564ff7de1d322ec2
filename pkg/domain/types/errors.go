package types

import "github.com/m-mizutani/goerr/v2"

// Error taxonomy shared across layers. Repositories and use cases wrap
// these so callers can classify failures with errors.Is regardless of
// which backend produced them.
var (
	// ErrMissingRequiredField marks a request or record missing data the
	// operation cannot proceed without.
	ErrMissingRequiredField = goerr.New("missing required field")

	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = goerr.New("record not found")

	// ErrUpstreamUnavailable marks a record store or notifier failure the
	// caller may retry.
	ErrUpstreamUnavailable = goerr.New("upstream unavailable")

	// ErrAlreadyDecided marks a write-once decision that is already
	// present. The existing record is left untouched.
	ErrAlreadyDecided = goerr.New("ticket is already decided")
)
