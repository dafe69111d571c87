package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/patchcheck/internal/config"
	"github.com/dendrascience/patchcheck/internal/logging"
	"github.com/dendrascience/patchcheck/patchfile"
	"github.com/dendrascience/patchcheck/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errVerificationFailed is returned by commands after reporting failed checks.
var errVerificationFailed = errors.New("verification failed")

// rootOptions is shared by every subcommand once PersistentPreRunE has run.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

func (o *rootOptions) layout() patchfile.Layout {
	return patchfile.Layout{Root: o.cfg.Root}
}

// NewRootCmd creates and returns the root cobra command for the patchcheck CLI.
// It sets up all subcommands, command groups, and flag bindings.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "patchcheck",
		Short: "patchcheck - verify and maintain on-disk update patches",
		Long: `patchcheck verifies the integrity of update bundles ("patches") before they are
trusted, and maintains the patch directory they live in.

Every patch version is identified by a 32 character MD5 fingerprint. Versions are stored
under <root>/patch as patch-<first 8 hex> directories and patch-<first 8 hex>.patch archives.

Commands that verify or delete assume the caller already holds the patch info lock.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.v, opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			patchfile.SetLogger(logging.New(cfg.Log, cmd.ErrOrStderr()))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./patchcheck.yaml or $HOME/.patchcheck/patchcheck.yaml)")
	flags.String("root", "", "application root directory holding patch/")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json")
	flags.Int("workers", 0, "parallel verifications (0 = number of CPUs)")
	for key, flag := range map[string]string{
		"root":       "root",
		"log.level":  "log-level",
		"log.format": "log-format",
		"workers":    "workers",
	} {
		if err := opts.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	groupInspect := "inspect"
	groupVerify := "verify"
	groupMaintain := "maintain"

	rootCmd.AddGroup(&cobra.Group{ID: groupInspect, Title: "Inspection"})
	rootCmd.AddGroup(&cobra.Group{ID: groupVerify, Title: "Verification"})
	rootCmd.AddGroup(&cobra.Group{ID: groupMaintain, Title: "Maintenance"})

	for _, c := range []*cobra.Command{
		NewDigestCmd(),
		NewEntriesCmd(),
		NewNameCmd(opts),
		NewSizeCmd(opts),
		NewListCmd(opts),
	} {
		c.GroupID = groupInspect
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		NewVerifyCmd(),
		NewCheckCmd(opts),
	} {
		c.GroupID = groupVerify
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		NewInstallCmd(opts),
		NewCleanCmd(opts),
	} {
		c.GroupID = groupMaintain
		rootCmd.AddCommand(c)
	}

	return rootCmd
}
