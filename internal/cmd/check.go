package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check subcommand running every verification in a manifest.
func NewCheckCmd(opts *rootOptions) *cobra.Command {
	var discard bool

	cmd := &cobra.Command{
		Use:   "check MANIFEST",
		Short: "Verify every file listed in a manifest, in parallel",
		Long: `Verify the files listed in a YAML manifest:

  version: <fingerprint of the bundle>
  files:
    - path: patch-01234567/dex/classes.jar
      entry: classes.dex
      md5: <fingerprint>

Relative paths resolve against the manifest's directory. Files are hashed concurrently
(--workers). With --discard every file that fails verification is deleted. Files not yet
checked when the run is interrupted are reported as skipped and never deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := patchfile.LoadManifest(args[0])
			if err != nil {
				return err
			}

			results := patchfile.VerifyAll(cmd.Context(), m.Files, opts.cfg.Workers)
			out := cmd.OutOrStdout()
			failed, skipped := 0, 0
			for _, r := range results {
				name := r.Check.Path
				if r.Check.Entry != "" {
					name += "!" + r.Check.Entry
				}
				switch {
				case r.OK():
					fmt.Fprintf(out, "OK  %s\n", name)
				case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
					skipped++
					fmt.Fprintf(out, "SKIPPED  %s: %v\n", name, r.Err)
				default:
					failed++
					fmt.Fprintf(out, "FAIL  %s: %v\n", name, r.Err)
					if discard && untrusted(r.Err) {
						reportDiscard(cmd, r.Check.Path)
					}
				}
			}
			fmt.Fprintf(out, "\n%d checked, %d failed, %d skipped\n", len(results)-skipped, failed, skipped)
			if failed > 0 {
				return errVerificationFailed
			}
			if skipped > 0 {
				return cmd.Context().Err()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&discard, "discard", false, "delete files that fail verification")

	return cmd
}
