package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			sha := a.GitSHA
			if sha == "" {
				sha = "unknown"
			}
			fmt.Fprintf(w, "gh-launch %s\n", sha)
			if a.GitDirty != "" {
				fmt.Fprintln(w, "Git Dirty: true")
			}
			return nil
		},
	}
}
