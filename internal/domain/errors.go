package domain

import "errors"

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation (taken username, occupied day).
	ErrConflict = errors.New("conflict")
	// ErrAccessDenied indicates that the acting account does not own the record.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidInput indicates a malformed or out-of-range value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
