// Package patchfile verifies and manages the on-disk artifacts of incrementally applied
// update bundles ("patches").
//
// Every patch version is identified by a 32 character lowercase hex MD5 fingerprint.
// Before a version is trusted, callers recompute the fingerprint of the bytes on disk and
// compare it to the expected value; anything that does not match is discarded.
//
// Key Components:
//
// Digest Engine:
//   - Streaming MD5 in fixed ChunkSize reads, never buffering whole inputs
//   - Handles always closed, close failures logged and swallowed
//   - Canonical OCI (sha256) digests for manifests that carry them
//
// Archive Entry Reader:
//   - Exact-name lookup of a single zip/jar entry without extracting the archive
//   - ErrEntryNotFound is distinct from ErrInvalidArchive
//
// Version Namer:
//   - patch-<first8> version directories and patch-<first8>.patch archives
//   - Layout resolves the fixed names under an application root
//
// Directory Lifecycle:
//   - Recursive sizing and deletion with explicit stacks, symlinks never followed
//   - SafeDelete falls back to DeferredCleanup, flushed at shutdown
//
// Nothing in this package takes the patch info lock. Callers must hold it for any
// verify, activate or delete sequence. Read-only digesting of disjoint files is safe to
// run in parallel; VerifyAll does exactly that.
//
// Failure paths report to the logger installed with SetLogger. Without one, diagnostics
// are discarded and behaviour is unchanged.
package patchfile
