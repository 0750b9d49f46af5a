package analysis

import "errors"

var (
	// ErrInvalidInput marks malformed input: a nil book or an empty trade
	// list where at least one trade is required.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData marks a structurally valid but empty book side
	// where a best price is required.
	ErrInsufficientData = errors.New("insufficient data")
)
