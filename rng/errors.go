package rng

import "github.com/pkg/errors"

// Sentinel errors for package rng.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Seed errors
	ErrInvalidArgument = errors.New("invalid seed argument: seed must not be empty")
	ErrInvalidSeed     = errors.New("invalid seed: seeds can only contain the digits 0-9")

	// Count errors
	ErrInvalidCount      = errors.New("count must not be negative")
	ErrInvalidDigitCount = errors.New("digit count out of range")

	// Range errors
	ErrOutOfRange = errors.New("out of range: lower boundary can't be higher than upper boundary")

	// UUID errors
	ErrInvalidFormat = errors.New("uuid format must not be empty")
)
