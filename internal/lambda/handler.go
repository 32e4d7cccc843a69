package lambda

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stahnma/gh-launch/internal/launcher"
)

// Executor runs launcher actions.
type Executor interface {
	Execute(ctx context.Context, a launcher.Action) (launcher.Outcome, error)
}

// NewHandler returns a Lambda handler that refreshes the shared repository
// cache. The token comes from GITHUB_TOKEN in the function environment.
func NewHandler(e Executor, log logrus.FieldLogger) func(context.Context, interface{}) (string, error) {
	return func(ctx context.Context, event interface{}) (string, error) {
		out, err := e.Execute(ctx, launcher.Action{Kind: launcher.KindRefreshCache})
		if err != nil {
			return "", fmt.Errorf("refresh: %w", err)
		}
		if out.Count == 0 {
			log.Warn("Refresh produced an empty repository list")
		}
		return fmt.Sprintf("Repository cache refreshed with %d repositories", out.Count), nil
	}
}
