package cmd

import (
	"fmt"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/spf13/cobra"
)

// NewNameCmd creates the name subcommand resolving where a fingerprint's artifacts live.
func NewNameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "name FINGERPRINT",
		Short: "Show the canonical names and paths for a fingerprint",
		Long: `Show the version directory and archive names for FINGERPRINT, and their paths
under the configured root.

Only the first 8 characters of the fingerprint name the version. Two fingerprints sharing
those characters resolve to the same paths.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := patchfile.ParseFingerprint(args[0])
			if err != nil {
				return err
			}
			dirName, _ := patchfile.VersionDirectoryName(fp)
			archiveName, _ := patchfile.VersionArchiveName(fp)
			l := opts.layout()
			dir, _ := l.VersionDirectory(fp)
			archive, _ := l.VersionArchive(fp)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "directory:      %s\n", dirName)
			fmt.Fprintf(out, "archive:        %s\n", archiveName)
			fmt.Fprintf(out, "directory path: %s\n", dir)
			fmt.Fprintf(out, "archive path:   %s\n", archive)
			fmt.Fprintf(out, "info file:      %s\n", l.InfoFile())
			fmt.Fprintf(out, "lock file:      %s\n", l.LockFile())
			return nil
		},
	}
}
