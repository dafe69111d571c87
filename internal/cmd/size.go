package cmd

import (
	"fmt"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewSizeCmd creates the size subcommand reporting disk usage of a file or tree.
func NewSizeCmd(opts *rootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "size [PATH]",
		Short: "Report the size of a file or directory tree",
		Long: `Report the total size of PATH: the file length, or the sum of every regular file
below a directory. Symbolic links are not followed. Without PATH the patch directory
under the configured root is measured. Missing paths report 0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.layout().PatchDirectory()
			if len(args) > 0 {
				path = args[0]
			}
			size := patchfile.SizeOf(path)
			if raw {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", size, path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", humanize.IBytes(uint64(size)), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "bytes", false, "print the size in bytes")

	return cmd
}
