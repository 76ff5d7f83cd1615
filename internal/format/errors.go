package format

import "errors"

var (
	// ErrShortBuffer indicates the buffer is too small to hold the record.
	ErrShortBuffer = errors.New("format: buffer too short")

	// ErrBadSignature indicates the record's signature field did not match.
	ErrBadSignature = errors.New("format: bad signature")

	// ErrBadHeader indicates a header whose fields fail sanity checks.
	ErrBadHeader = errors.New("format: implausible header")
)
