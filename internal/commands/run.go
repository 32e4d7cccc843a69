package commands

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stahnma/gh-launch/internal/format"
	"github.com/stahnma/gh-launch/internal/launcher"
)

func (a *App) newRunCommand() *cobra.Command {
	kinds := make([]string, len(launcher.Kinds))
	for i, k := range launcher.Kinds {
		kinds[i] = string(k)
	}
	cmd := &cobra.Command{
		Use:       "run <kind> [target]",
		Short:     "Run the action bound to a selected item",
		Long:      "Run one action. Kinds: " + strings.Join(kinds, ", ") + ".",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := launcher.Kind(args[0])
			if !slices.Contains(launcher.Kinds, kind) {
				return fmt.Errorf("unknown action %q (want one of %s)", args[0], strings.Join(kinds, ", "))
			}
			target := ""
			if len(args) == 2 {
				target = args[1]
			} else if kind == launcher.KindSaveToken {
				target = readLine(cmd.InOrStdin())
			}
			return a.runAction(cmd, launcher.Action{Kind: kind, Target: target})
		},
	}
	cmd.Flags().Bool("json", false, "Print a failure as a JSON item")
	return cmd
}

// runAction executes a and reports the outcome. A failure is also rendered
// as an item so launcher front-ends can show it.
func (a *App) runAction(cmd *cobra.Command, action launcher.Action) error {
	w := cmd.OutOrStdout()

	out, err := a.Launcher.Execute(cmd.Context(), action)
	if err != nil {
		item := launcher.FailureItem(action, err, a.Config.Icon)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			_ = format.WriteJSON(w, []launcher.Item{item})
		} else {
			format.WriteItems(w, []launcher.Item{item})
		}
		return fmt.Errorf("%s: %w", action.Kind, err)
	}
	fmt.Fprintln(w, out.Message)
	return nil
}

// readLine returns the first line of r, trimmed.
func readLine(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
