package cli

import (
	"github.com/spf13/cobra"
)

// BackupOptions holds flags for the backup command.
type BackupOptions struct {
	*RootOptions
	Dir string // destination directory; empty means sibling paths
}

// NewBackupCommand creates the backup command.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the active store",
		Long: `Copy the active store file, plus its -wal and -shm side files when
present, to timestamped backup paths. Copies are byte-exact and share one
timestamp suffix.

A failed backup must be treated as wholly untrustworthy even if the main
file copy exists; retry until it succeeds before mutating anything.

Examples:
  remtag backup
  remtag backup --dir ~/reminders-backups`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory to write backups into (default: next to the store)")
	return cmd
}

func runBackup(opts *BackupOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	e, err := opts.engine(opts.Dir)
	if err != nil {
		return err
	}

	path, err := e.Backup(cmd.Context())
	if err != nil {
		return storeExitError("backup", err)
	}

	if f.Format == "json" {
		return f.JSON(map[string]interface{}{"backup": path})
	}
	f.Textf("%s", path)
	return nil
}
