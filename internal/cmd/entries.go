package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewEntriesCmd creates the entries subcommand listing an archive's central directory.
func NewEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries ARCHIVE",
		Short: "List the entries of a patch archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := patchfile.EntryNames(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tCOMPRESSED\tCRC32")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%08x\n", e.Name,
					humanize.IBytes(e.UncompressedSize), humanize.IBytes(e.CompressedSize), e.CRC32)
			}
			return tw.Flush()
		},
	}
}
