package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/dendrascience/patchcheck/version"
)

// This utility prints the MD5 fingerprint of every file given on the
// command line, one per line, in the format md5sum uses.
// With -e the named archive entry is hashed instead of the whole file.
// Unreadable files are reported on stderr and the exit status is 1.
// Usage errors exit with status 2.

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("patchmd5", flag.ContinueOnError)
	flags.SetOutput(stderr)
	entry := flags.String("e", "", "Hash this archive entry instead of the whole file.")
	showVersion := flags.Bool("version", false, "Print version information and exit.")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		version.PrintVersion(stdout, "patchmd5")
		return 0
	}
	if flags.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: patchmd5 [-e entry] FILE...")
		return 2
	}

	status := 0
	for _, path := range flags.Args() {
		var (
			sum string
			err error
		)
		if *entry != "" {
			sum, err = patchfile.DigestEntry(path, *entry)
		} else {
			sum, err = patchfile.DigestFile(path)
		}
		if err != nil {
			fmt.Fprintf(stderr, "patchmd5: %v\n", err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s  %s\n", sum, path)
	}
	return status
}
