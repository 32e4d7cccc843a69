package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/stahnma/gh-launch/internal/format"
)

func (a *App) newQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [text...]",
		Short: "Show the items a launcher would display for a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, strings.Join(args, " "))
		},
	}
	cmd.Flags().Bool("json", false, "Print items as JSON")
	return cmd
}

func (a *App) runQuery(cmd *cobra.Command, query string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	w := cmd.OutOrStdout()

	items := a.Launcher.Evaluate(cmd.Context(), query)
	if asJSON {
		return format.WriteJSON(w, items)
	}
	format.WriteItems(w, items)
	return nil
}
