package models

import "errors"

// Core error taxonomy. Callers recover from the first two by exclusion and
// renormalization; only ErrComputationUnavailable reaches the HTTP layer.
var (
	// ErrMissingData marks a required field or series that the provider did
	// not supply.
	ErrMissingData = errors.New("missing data")

	// ErrInsufficientHistory marks a price series shorter than the minimum
	// lookback window of one indicator. It excludes that indicator only.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrInvalidInput marks a malformed series, e.g. non-monotonic timestamps.
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputationUnavailable means no category had any usable data, so no
	// recommendation can be produced. Distinct from a genuine HOLD.
	ErrComputationUnavailable = errors.New("computation unavailable")
)
