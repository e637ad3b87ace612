package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <reminder-id>",
		Short: "Show the tags on one reminder",
		Long: `Show the active tags on a reminder, addressed by its stable external
identifier (the CloudKit-style UUID). Case does not matter.

Examples:
  remtag show 6ED4B567-0E25-4C02-9BF6-8E60A3F3A2C1
  remtag show 6ed4b567-0e25-4c02-9bf6-8e60a3f3a2c1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command, reminderID string) error {
	f := opts.formatter(cmd)

	e, err := opts.engine("")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.Verbose {
		if key, kerr := e.ReminderRowKey(ctx, reminderID); kerr == nil {
			f.VerboseLog("reminder row key: %d", key)
		}
	}

	tags, err := e.TagsForReminder(ctx, reminderID)
	if err != nil {
		return storeExitError("show tags", err)
	}

	if f.Format == "json" {
		return f.JSON(map[string]interface{}{
			"reminder": reminderID,
			"tags":     tags,
		})
	}

	if len(tags) == 0 {
		f.Textf("no tags")
		return nil
	}
	f.Textf("#%s", strings.Join(tags, " #"))
	return nil
}
