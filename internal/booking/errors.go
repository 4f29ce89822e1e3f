package booking

import "errors"

var (
	// ErrMissingName is returned when the contact name is empty
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when the contact email is empty
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingService is returned when no service was selected
	ErrMissingService = errors.New("a service selection is required")

	// ErrInvalidRegion is returned for an unknown region code
	ErrInvalidRegion = errors.New("unknown region code")

	// ErrBookingNotFound is returned when a booking is not found
	ErrBookingNotFound = errors.New("booking not found")
)
