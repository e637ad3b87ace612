// Command remtag manages native hashtags in the Reminders store.
package main

import (
	"fmt"
	"os"

	"github.com/brndnsvr/remtag/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
