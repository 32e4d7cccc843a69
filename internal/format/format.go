package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/stahnma/gh-launch/internal/launcher"
)

// WriteJSON writes indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// WriteItems renders items as a table, one row per item. Actions are shown
// through Action.String so tokens stay redacted.
func WriteItems(w io.Writer, items []launcher.Item) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Label", "Detail", "Action"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, item := range items {
		table.Append([]string{item.Label, item.Subtext, actionSummary(item.Actions)})
	}
	table.Render()
}

func actionSummary(actions []launcher.Action) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}
