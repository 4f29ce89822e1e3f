package contact

import "errors"

var (
	// ErrMissingName is returned when a message has no sender name
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when a message has no sender email
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingMessage is returned when the message body is empty
	ErrMissingMessage = errors.New("message is required")

	// ErrInvalidRegion is returned when the region is not a known region
	ErrInvalidRegion = errors.New("invalid region")

	// ErrMessageNotFound is returned when a message does not exist
	ErrMessageNotFound = errors.New("message not found")
)
