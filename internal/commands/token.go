package commands

import (
	"github.com/spf13/cobra"
	"github.com/stahnma/gh-launch/internal/launcher"
)

func (a *App) newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored GitHub token",
	}
	set := &cobra.Command{
		Use:   "set [token]",
		Short: "Store a GitHub token (read from stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			} else {
				token = readLine(cmd.InOrStdin())
			}
			return a.runAction(cmd, launcher.Action{Kind: launcher.KindSaveToken, Label: "Save token", Target: token})
		},
	}
	set.Flags().Bool("json", false, "Print a failure as a JSON item")
	cmd.AddCommand(set)
	return cmd
}
