package cmd

import (
	"fmt"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean subcommand removing versions that are no longer needed.
func NewCleanCmd(opts *rootOptions) *cobra.Command {
	var (
		keep   []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete patch versions that are not kept",
		Long: `Delete every version directory and archive under the patch directory whose
prefix does not belong to a --keep fingerprint, plus leftover temporary copies.
Typically the current and previous fingerprints from the patch info file are kept.
Paths that cannot be deleted now are retried when the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kept := make(map[string]bool)
			for _, k := range keep {
				fp, err := patchfile.ParseFingerprint(k)
				if err != nil {
					return err
				}
				name, _ := patchfile.VersionDirectoryName(fp)
				kept[name] = true
			}

			l := opts.layout()
			versions, err := l.Versions()
			if err != nil {
				return err
			}
			temporaries, err := l.Temporaries()
			if err != nil {
				return err
			}

			var targets []string
			for _, v := range versions {
				if kept[patchfile.PatchBaseName+v.Prefix] {
					continue
				}
				if v.HasDir {
					targets = append(targets, v.Directory)
				}
				if v.HasArchive {
					targets = append(targets, v.Archive)
				}
			}
			targets = append(targets, temporaries...)

			out := cmd.OutOrStdout()
			var reclaimed int64
			failed := 0
			for _, path := range targets {
				size := patchfile.SizeOf(path)
				if dryRun {
					fmt.Fprintf(out, "would delete %s (%s)\n", path, humanize.IBytes(uint64(size)))
					continue
				}
				if !patchfile.DeleteDir(path) {
					failed++
					fmt.Fprintf(out, "could not delete %s, retrying at exit\n", path)
					continue
				}
				reclaimed += size
				fmt.Fprintf(out, "deleted %s\n", path)
			}
			if !dryRun {
				fmt.Fprintf(out, "reclaimed %s\n", humanize.IBytes(uint64(reclaimed)))
			}
			if failed > 0 {
				return fmt.Errorf("%d paths could not be deleted", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&keep, "keep", nil, "fingerprint to keep (repeatable)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "only print what would be deleted")

	return cmd
}
