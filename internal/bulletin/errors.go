package bulletin

import "errors"

var (
	// ErrMalformed indicates the bulletin markup is not well-formed.
	ErrMalformed = errors.New("malformed bulletin document")

	// ErrNoTimeAxis indicates no valid timestep sequence was discoverable by
	// any strategy. This is fatal for an extraction run: without a time axis
	// there is nothing to align series against.
	ErrNoTimeAxis = errors.New("no valid time axis in bulletin")
)
