package util

import "github.com/pkg/errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Slice errors
	ErrEmptyInput = errors.New("input must contain at least one item")

	// Range errors
	ErrDivisionByZero = errors.New("division by zero: the *_max arguments must not be 0")

	// Logger errors
	ErrEmptyPath    = errors.New("log file path must not be empty")
	ErrEmptyContent = errors.New("log content must not be empty")
	ErrLoggerClosed = errors.New("file logger is closed")
)
