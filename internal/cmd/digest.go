package cmd

import (
	"fmt"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/spf13/cobra"
)

// NewDigestCmd creates the digest subcommand, printing fingerprints of files or of one
// named entry inside each archive.
func NewDigestCmd() *cobra.Command {
	var (
		entry string
		oci   bool
	)

	cmd := &cobra.Command{
		Use:   "digest FILE...",
		Short: "Print the fingerprint of files or archive entries",
		Long: `Print the MD5 fingerprint of each FILE, md5sum style.

With --entry, each FILE is opened as a zip archive and only the named entry is hashed,
without extracting the archive. With --oci the sha256 OCI digest is printed as well.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				sum, err := digestTarget(path, entry)
				if err != nil {
					return err
				}
				name := path
				if entry != "" {
					name += "!" + entry
				}
				if !oci {
					fmt.Fprintf(out, "%s  %s\n", sum, name)
					continue
				}
				d, err := ociTarget(path, entry)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %s  %s\n", sum, d, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&entry, "entry", "e", "", "hash only this archive entry (exact name)")
	cmd.Flags().BoolVar(&oci, "oci", false, "also print the sha256 OCI digest")

	return cmd
}

func digestTarget(path, entry string) (string, error) {
	if entry == "" {
		return patchfile.DigestFile(path)
	}
	return patchfile.DigestEntry(path, entry)
}

func ociTarget(path, entry string) (string, error) {
	if entry == "" {
		d, err := patchfile.OCIDigestFile(path)
		return d.String(), err
	}
	rc, err := patchfile.OpenEntry(path, entry)
	if err != nil {
		return "", err
	}
	defer patchfile.CloseQuietly(rc)
	d, err := patchfile.OCIDigest(rc)
	return d.String(), err
}
