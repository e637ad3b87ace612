package cli

import (
	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <tag> <reminder-id>",
		Short: "Attach a tag to a reminder",
		Long: `Attach a tag to a reminder. The tag is created on first use; adding a tag
the reminder already carries is a no-op. Tag names are matched
case-insensitively ("Work" and "work" are the same tag) and a leading '#'
is accepted.

The mutation runs in a single exclusive transaction against the live
store, so it is safe while the host application is running.

Examples:
  remtag add work 6ED4B567-0E25-4C02-9BF6-8E60A3F3A2C1
  remtag add '#errands' 6ed4b567-0e25-4c02-9bf6-8e60a3f3a2c1`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, cmd, args[0], args[1])
		},
	}
	return cmd
}

func runAdd(opts *RootOptions, cmd *cobra.Command, tag, reminderID string) error {
	f := opts.formatter(cmd)

	e, err := opts.engine("")
	if err != nil {
		return err
	}

	changed, err := e.AddTag(cmd.Context(), tag, reminderID)
	if err != nil {
		return storeExitError("add tag", err)
	}

	if f.Format == "json" {
		return f.JSON(map[string]interface{}{
			"tag":      tag,
			"reminder": reminderID,
			"changed":  changed,
		})
	}

	if changed {
		f.Textf("tagged")
	} else {
		f.Textf("already tagged")
	}
	return nil
}
