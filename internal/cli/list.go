package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tags with usage counts",
		Long: `List every live tag in the active store, with the number of reminders
currently carrying it. Removed associations do not count, but a tag whose
last reminder was untagged still appears with a count of zero.

Examples:
  remtag list
  remtag list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	e, err := opts.engine("")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.Verbose {
		if path, perr := e.StorePath(ctx); perr == nil {
			f.VerboseLog("store: %s", path)
		}
	}

	labels, err := e.ListTags(ctx)
	if err != nil {
		return storeExitError("list tags", err)
	}

	if f.Format == "json" {
		return f.JSON(map[string]interface{}{"tags": labels})
	}

	if len(labels) == 0 {
		f.Textf("no tags")
		return nil
	}
	for _, l := range labels {
		f.Textf("#%s\t%d", l.Name, l.Count)
	}
	return nil
}
