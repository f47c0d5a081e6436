package huffpack

import "errors"

var (
	// ErrInvalidInput is returned when there is nothing to encode, or when
	// the input cannot be represented in the requested alphabet.
	ErrInvalidInput = errors.New("huffpack: invalid input")

	// ErrEncoding is returned when a symbol in the input has no code.
	ErrEncoding = errors.New("huffpack: encoding error")

	// ErrMalformedContainer is returned when a container header or code
	// table cannot be parsed or fails validation.
	ErrMalformedContainer = errors.New("huffpack: malformed container")

	// ErrDecoding is returned when the payload bits do not decode to a whole
	// number of symbols, i.e. the payload is truncated or corrupt.
	ErrDecoding = errors.New("huffpack: decoding error")
)
