package sequence

import "errors"

var (
	ErrInvalidSequence = errors.New("sequence number must be positive")
	ErrMalformedNumber = errors.New("malformed record number")
)
