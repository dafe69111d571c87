package patchfile

import (
	"fmt"
	"path/filepath"
)

// VerifyFile checks that the whole file at path hashes to expected.
func VerifyFile(path, expected string) error {
	if !IsWellFormed(expected) {
		return fmt.Errorf("%w: expected %q", ErrMalformedFingerprint, expected)
	}
	actual, err := DigestFile(path)
	if err != nil {
		diag().Warn("cannot digest patch file", "path", path, "error", err)
		return err
	}
	return compare(path, expected, actual)
}

// VerifyDexFile checks a code artifact. A raw .dex file is hashed as a whole; anything
// else is treated as a jar and its classes.dex entry is hashed. A jar without that entry
// yields ErrEntryNotFound.
func VerifyDexFile(path, expected string) error {
	if IsRawDexFile(filepath.Base(path)) {
		return VerifyFile(path, expected)
	}
	return VerifyEntry(path, DexInJar, expected)
}

// VerifyResourceArsc checks the resources.arsc entry of a packaged resource bundle.
func VerifyResourceArsc(path, expected string) error {
	return VerifyEntry(path, ResourceTable, expected)
}

// VerifyEntry checks one named entry of the archive at path.
func VerifyEntry(path, entry, expected string) error {
	if !IsWellFormed(expected) {
		return fmt.Errorf("%w: expected %q", ErrMalformedFingerprint, expected)
	}
	actual, err := DigestEntry(path, entry)
	if err != nil {
		return err
	}
	return compare(path+"!"+entry, expected, actual)
}

// Discard deletes an artifact that failed verification, file or directory alike.
func Discard(path string) bool {
	diag().Warn("discarding untrusted patch artifact", "path", path)
	return DeleteDir(path)
}

func compare(path, expected, actual string) error {
	if expected != actual {
		err := &MismatchError{Path: path, Expected: expected, Actual: actual}
		diag().Error("patch verification failed", "path", path, "expected", expected, "actual", actual)
		return err
	}
	return nil
}
