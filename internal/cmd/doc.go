// Package cmd provides the command-line interface implementation for patchcheck.
//
// Each subcommand lives in its own file with a constructor returning a *cobra.Command.
// The root command owns configuration loading (viper) and installs the slog logger the
// patchfile package reports diagnostics to, before any subcommand runs.
//
// Commands are grouped as:
//   - inspection: digest, entries, name, size, list
//   - verification: verify, check
//   - maintenance: install, clean
//
// A failed verification is returned as an error so the process exits non-zero.
package cmd
