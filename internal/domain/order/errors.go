package order

import "errors"

var (
	// ErrNoResponse covers transport failures where no response arrived.
	ErrNoResponse = errors.New("no response from server")

	// ErrMalformedResponse covers responses whose envelope is missing the
	// expected data payload. The list is shown empty, never crashed.
	ErrMalformedResponse = errors.New("response format is invalid")

	// ErrNotFound covers lookups for orders the upstream does not know.
	ErrNotFound = errors.New("order not found")
)
