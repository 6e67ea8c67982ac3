package renderer

import "errors"

var (
	// ErrInvalidViewport is returned for empty or negative frame sizes.
	ErrInvalidViewport = errors.New("renderer: invalid viewport")

	// ErrSizeMismatch is returned when the inputs and the output target
	// disagree on dimensions.
	ErrSizeMismatch = errors.New("renderer: input and output sizes differ")

	// ErrNilInput is returned when a required image is missing.
	ErrNilInput = errors.New("renderer: nil input")

	// ErrClosed is returned by a backend after Close.
	ErrClosed = errors.New("renderer: backend closed")
)
