package providers

import "errors"

var (
	// ErrProviderNotFound is returned when a provider id does not exist.
	ErrProviderNotFound = errors.New("provider not found")
)
