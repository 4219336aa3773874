package icslinks

import (
	"errors"
)

var (
	// ErrMissingField is returned when a required event field (start or
	// end) is absent from the input.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidURL is returned when a source URL has no usable query
	// component.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidDate is returned at formatting time when start or end is
	// not in one of the accepted date layouts.
	ErrInvalidDate = errors.New("invalid date")

	ErrInvalidEncoding = errors.New("invalid base64 encoding")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrEventNotFound   = errors.New("event not found")
)
