package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewListCmd creates the list subcommand showing every version in the patch directory.
func NewListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List patch versions present under the root",
		Long: `List every patch-<prefix> directory and archive under the patch directory with
its size. Each prefix gets a stable color so the same version is easy to spot across
runs and machines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := opts.layout().Versions()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(versions) == 0 {
				fmt.Fprintln(out, "no patch versions")
				return nil
			}
			for _, v := range versions {
				dirSize, archiveSize := "-", "-"
				if v.HasDir {
					dirSize = humanize.IBytes(uint64(patchfile.SizeOf(v.Directory)))
				}
				if v.HasArchive {
					archiveSize = humanize.IBytes(uint64(patchfile.SizeOf(v.Archive)))
				}
				lipgloss.Fprintln(out, versionTag(v.Prefix)+" "+patchfile.PatchBaseName+v.Prefix,
					"dir="+dirSize, "archive="+archiveSize)
			}
			return nil
		},
	}
}

// versionTag renders a marker whose color is derived from the version prefix.
func versionTag(prefix string) string {
	n := colorhash.HashString(prefix) % 216
	if n < 0 {
		n = -n
	}
	// xterm 6x6x6 color cube starts at 16.
	color := lipgloss.Color(strconv.Itoa(16 + n))
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("●")
}
