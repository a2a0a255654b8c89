package requests

import "errors"

var (
	// ErrUnsupportedService is returned when the service type is not in the catalogue.
	ErrUnsupportedService = errors.New("service type not supported")

	// ErrMissingLocation is returned when the request has no location text.
	ErrMissingLocation = errors.New("location is required")

	// ErrMissingUser is returned when no user reference is given.
	ErrMissingUser = errors.New("user reference is required")

	// ErrRequestNotFound is returned when a request id does not exist.
	ErrRequestNotFound = errors.New("service request not found")

	// ErrInvalidTransition is returned for a status change the lifecycle graph forbids.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyAssigned is returned when the atomic accept finds another provider won.
	ErrAlreadyAssigned = errors.New("request already assigned to another provider")

	// ErrNotCancellable is returned when cancellation is attempted past ASSIGNED.
	ErrNotCancellable = errors.New("request can no longer be cancelled")
)
