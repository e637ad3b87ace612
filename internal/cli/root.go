// Package cli implements the remtag command tree.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brndnsvr/remtag/internal/config"
	"github.com/brndnsvr/remtag/internal/remdb"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string        // "json" | "text"
	StoresDir string        // override for the host store directory
	Timeout   time.Duration // lock busy-wait bound

	// LoadConfig loads the config file; swapped in tests.
	LoadConfig func() (config.Config, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the remtag CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{LoadConfig: config.Load}

	cmd := &cobra.Command{
		Use:   "remtag",
		Short: "Native tags for Reminders",
		Long: `remtag manipulates hashtag rows directly in the SQLite store backing the
Reminders application, since no public API exposes tag operations.

The active store is located fresh on every invocation, the schema is
validated before any mutation, and removals follow the host's own
soft-delete convention so sync keeps working. Run 'remtag backup' before
anything you would not want to explain later.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.StoresDir, "stores-dir", "", "override the Reminders store directory")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "lock busy-wait bound (e.g. 5s)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// engine builds a remdb.Engine from flags layered over the config file.
// Flags win; config file values fill anything the flags left unset.
func (o *RootOptions) engine(backupDir string) (*remdb.Engine, error) {
	load := o.LoadConfig
	if load == nil {
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	engineOpts := remdb.Options{
		StoresDir:   o.StoresDir,
		BusyTimeout: o.Timeout,
		BackupDir:   backupDir,
	}
	if engineOpts.StoresDir == "" {
		engineOpts.StoresDir = cfg.StoresDir
	}
	if engineOpts.BusyTimeout == 0 {
		engineOpts.BusyTimeout = cfg.BusyTimeout()
	}
	if engineOpts.BackupDir == "" {
		engineOpts.BackupDir = cfg.BackupDir
	}

	e, err := remdb.New(engineOpts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "initialize engine", err)
	}
	return e, nil
}

// formatter builds the OutputFormatter for a command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
