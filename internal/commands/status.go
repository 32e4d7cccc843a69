package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stahnma/gh-launch/internal/cache"
)

func (a *App) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token and a repository cache are present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			token := "missing"
			if _, ok, err := a.Credentials.Get(); err != nil {
				token = "unreadable (" + err.Error() + ")"
			} else if ok {
				token = "stored"
			}
			fmt.Fprintf(w, "GitHub token: %s\n", token)

			repos, ok, err := a.Cache.Load(cmd.Context())
			switch {
			case cache.IsCorrupt(err):
				fmt.Fprintln(w, "Repository cache: damaged")
			case err != nil:
				fmt.Fprintf(w, "Repository cache: unreadable (%v)\n", err)
			case !ok:
				fmt.Fprintln(w, "Repository cache: missing")
			default:
				fmt.Fprintf(w, "Repository cache: %d repositories\n", len(repos))
			}
			if fs, isFile := a.Cache.(*cache.FileStore); isFile {
				fmt.Fprintf(w, "Cache file: %s\n", fs.Path())
			}
			return nil
		},
	}
}
