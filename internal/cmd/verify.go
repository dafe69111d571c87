package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify subcommand checking one artifact against a fingerprint.
func NewVerifyCmd() *cobra.Command {
	var (
		md5     string
		kind    string
		entry   string
		discard bool
	)

	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Verify a patch artifact against its expected fingerprint",
		Long: `Verify FILE against the fingerprint given with --md5.

Kinds:
  file  hash the whole file (default)
  dex   raw .dex files are hashed whole, anything else must be a jar holding classes.dex
  res   hash the resources.arsc entry of a resource bundle

--entry hashes an arbitrary named archive entry instead. With --discard an artifact that
does not match, cannot be read, is not a valid archive or lacks the entry is deleted
(directories recursively). A malformed --md5 is rejected before anything is read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := patchfile.ParseFingerprint(md5); err != nil {
				return err
			}
			var err error
			switch {
			case entry != "":
				err = patchfile.VerifyEntry(path, entry, md5)
			case kind == "file":
				err = patchfile.VerifyFile(path, md5)
			case kind == "dex":
				err = patchfile.VerifyDexFile(path, md5)
			case kind == "res":
				err = patchfile.VerifyResourceArsc(path, md5)
			default:
				return fmt.Errorf("unknown kind %q (valid: file, dex, res)", kind)
			}

			out := cmd.OutOrStdout()
			if err == nil {
				fmt.Fprintf(out, "OK  %s\n", path)
				return nil
			}
			fmt.Fprintf(out, "FAIL  %s: %v\n", path, err)
			if discard && untrusted(err) {
				reportDiscard(cmd, path)
			}
			return errVerificationFailed
		},
	}

	cmd.Flags().StringVar(&md5, "md5", "", "expected fingerprint (required)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "file", "artifact kind: file, dex, res")
	cmd.Flags().StringVarP(&entry, "entry", "e", "", "verify this archive entry (overrides --kind)")
	cmd.Flags().BoolVar(&discard, "discard", false, "delete the artifact when verification fails")

	cmd.MarkFlagRequired("md5")

	return cmd
}

// untrusted reports whether err condemns the artifact itself, as opposed to bad input,
// a missing file or an interrupted run.
func untrusted(err error) bool {
	return errors.Is(err, patchfile.ErrVerificationMismatch) ||
		errors.Is(err, patchfile.ErrInvalidArchive) ||
		errors.Is(err, patchfile.ErrEntryNotFound) ||
		errors.Is(err, patchfile.ErrReadFailure)
}

func reportDiscard(cmd *cobra.Command, path string) {
	if patchfile.Discard(path) {
		fmt.Fprintf(cmd.OutOrStdout(), "discarded %s\n", path)
		return
	}
	if patchfile.FileExists(path) {
		fmt.Fprintf(cmd.OutOrStdout(), "could not fully discard %s, retrying at exit\n", path)
	}
}
