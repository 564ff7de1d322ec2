package usecase

import (
	"errors"

	"github.com/secmon-lab/ringi/pkg/domain/types"
)

// Sentinel errors for the use case layer. These alias the shared
// taxonomy so callers can match with errors.Is at any layer.
var (
	ErrMissingRequiredField = types.ErrMissingRequiredField
	ErrNotFound             = types.ErrNotFound
	ErrUpstreamUnavailable  = types.ErrUpstreamUnavailable
	ErrAlreadyDecided       = types.ErrAlreadyDecided
)

// upstream classifies a record store or notifier failure. Taxonomy
// errors pass through untouched; anything else gets ErrUpstreamUnavailable
// joined into the chain so errors.Is can still reach the original cause.
func upstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyDecided) ||
		errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrUpstreamUnavailable) {
		return err
	}
	return errors.Join(ErrUpstreamUnavailable, err)
}
