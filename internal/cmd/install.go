package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install subcommand that verifies a downloaded bundle and
// places it at its canonical archive path.
func NewInstallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install SOURCE FINGERPRINT",
		Short: "Copy a downloaded bundle to its canonical path and verify it",
		Long: `Copy SOURCE to <root>/patch/patch-<first 8>.patch and verify the copy against
FINGERPRINT. The copy goes through a temporary file that is verified before it takes
the archive's place, so readers never see a partial or unverified archive. A copy that
does not verify is removed and an archive already installed there is kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			fp, err := patchfile.ParseFingerprint(args[1])
			if err != nil {
				return err
			}
			dst, err := opts.layout().VersionArchive(fp)
			if err != nil {
				return err
			}

			if err := patchfile.InstallFile(src, dst, fp); err != nil {
				if !errors.Is(err, patchfile.ErrVerificationMismatch) {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s: %v\n", src, err)
				return errVerificationFailed
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", dst)
			return nil
		},
	}
}
