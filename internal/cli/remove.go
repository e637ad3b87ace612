package cli

import (
	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <tag> <reminder-id>",
		Short: "Detach a tag from a reminder",
		Long: `Detach a tag from a reminder. Removing a tag the reminder does not carry
is a no-op. The association row is soft-deleted the way the host does it,
so the change syncs cleanly; the tag itself survives even if nothing
carries it anymore.

Examples:
  remtag remove work 6ED4B567-0E25-4C02-9BF6-8E60A3F3A2C1`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, cmd, args[0], args[1])
		},
	}
	return cmd
}

func runRemove(opts *RootOptions, cmd *cobra.Command, tag, reminderID string) error {
	f := opts.formatter(cmd)

	e, err := opts.engine("")
	if err != nil {
		return err
	}

	changed, err := e.RemoveTag(cmd.Context(), tag, reminderID)
	if err != nil {
		return storeExitError("remove tag", err)
	}

	if f.Format == "json" {
		return f.JSON(map[string]interface{}{
			"tag":      tag,
			"reminder": reminderID,
			"changed":  changed,
		})
	}

	if changed {
		f.Textf("untagged")
	} else {
		f.Textf("not tagged")
	}
	return nil
}
