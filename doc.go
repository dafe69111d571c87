// Package main provides the patchcheck command-line interface.
//
// patchcheck verifies the integrity of update bundles ("patches") before they are trusted
// and maintains the on-disk patch directory they are installed into. Every patch version
// is identified by a 32 character MD5 fingerprint; its files live under <root>/patch as
// patch-<first 8 hex> directories and patch-<first 8 hex>.patch archives.
//
// The main binary supports multiple subcommands:
//   - digest, entries: fingerprint files or named entries inside zip/jar archives
//   - name, list, size: resolve canonical names and inspect the patch directory
//   - verify, check: compare artifacts against expected fingerprints, singly or from a manifest
//   - install, clean: place downloaded bundles and remove versions no longer needed
//
// Paths that cannot be deleted while a command runs are retried once before exit.
package main
