package patchfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for package patchfile.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Input errors
	ErrMalformedFingerprint = errors.New("malformed fingerprint")

	// File and directory errors
	ErrNotFound     = errors.New("file not found")
	ErrExpectedFile = errors.New("expected file, got directory")

	// Archive errors
	ErrInvalidArchive = errors.New("invalid archive")
	ErrEntryNotFound  = errors.New("archive entry not found")
	ErrEntryTooLarge  = errors.New("archive entry exceeds read limit")

	// Stream errors
	ErrReadFailure = errors.New("read failure")

	// Verification errors
	ErrVerificationMismatch = errors.New("fingerprint mismatch")
)

// MismatchError reports a computed fingerprint that differs from the expected one.
// It matches ErrVerificationMismatch under errors.Is.
type MismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("fingerprint mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrVerificationMismatch
}
