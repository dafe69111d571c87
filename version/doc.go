// Package version reports build metadata for patchcheck binaries.
//
// Values come from -ldflags when the release build sets them:
//
//	-ldflags "-X github.com/dendrascience/patchcheck/version.Version=v1.2.0 -X github.com/dendrascience/patchcheck/version.Commit=abc123 -X github.com/dendrascience/patchcheck/version.Date=2026-01-01T00:00:00Z"
//
// Otherwise they fall back to debug.ReadBuildInfo (module version, vcs.revision and
// vcs.time), and finally to development placeholders.
package version
