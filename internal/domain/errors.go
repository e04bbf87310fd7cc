package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates a command or lookup matched nothing in the store.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates caller input validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidID indicates an identity that is not a non-negative integer.
	ErrInvalidID = errors.New("invalid person id")
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrInvalidInput, errors.New(strings.TrimSpace(msg)))
}

// NotFoundError tags an error as not-found.
func NotFoundError(msg string) error {
	return errors.Join(ErrNotFound, errors.New(strings.TrimSpace(msg)))
}

// IsClientError reports whether err was caused by caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidID)
}
