package commands

import (
	"github.com/spf13/cobra"
	"github.com/stahnma/gh-launch/internal/launcher"
)

func (a *App) newRefreshCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the repository cache from GitHub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAction(cmd, launcher.Action{Kind: launcher.KindRefreshCache, Label: "Refresh repository cache"})
		},
	}
	cmd.Flags().Bool("json", false, "Print a failure as a JSON item")
	return cmd
}
