package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/sirupsen/logrus"
)

// Outcome describes a completed action.
type Outcome struct {
	Kind    Kind
	Message string
	// Count is the number of repositories written by a cache action.
	Count int
}

// Result is delivered by Dispatch once an action finishes.
type Result struct {
	Outcome Outcome
	Err     error
}

// Execute runs the side effect bound to a. Failures are returned, never
// retried.
func (c *Coordinator) Execute(ctx context.Context, a Action) (Outcome, error) {
	log := c.logger().WithField("action", a.Kind)

	var (
		out Outcome
		err error
	)
	switch a.Kind {
	case KindSaveToken:
		out, err = c.saveToken(a.Target)
	case KindBuildCache, KindRebuildCache, KindRefreshCache:
		out, err = c.rebuild(ctx, a.Target)
	case KindOpenURL:
		out, err = c.open(a.Target)
	default:
		err = errors.Newf(errors.CodeInvalidInput, "unknown action %q", a.Kind)
	}
	out.Kind = a.Kind

	if err != nil {
		log.WithError(err).Error("Action failed")
		return out, err
	}
	log.WithField("count", out.Count).Info(out.Message)
	return out, nil
}

// Dispatch runs Execute on its own goroutine. Dispatches may overlap; each
// cache action writes a complete snapshot and the last one to finish wins.
func (c *Coordinator) Dispatch(ctx context.Context, a Action) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		out, err := c.Execute(ctx, a)
		ch <- Result{Outcome: out, Err: err}
	}()
	return ch
}

func (c *Coordinator) saveToken(token string) (Outcome, error) {
	if c.Credentials == nil {
		return Outcome{}, errors.New(errors.CodeInvalidConfig, "no credential store configured")
	}
	if err := c.Credentials.Set(token); err != nil {
		return Outcome{}, err
	}
	return Outcome{Message: "GitHub token saved"}, nil
}

// rebuild replaces the cache with a fresh fetch. token overrides the stored
// credential when non-empty. A failed fetch leaves the cache untouched.
func (c *Coordinator) rebuild(ctx context.Context, token string) (Outcome, error) {
	token = strings.TrimSpace(token)
	if token == "" && c.Credentials != nil {
		stored, ok, err := c.Credentials.Get()
		if err != nil {
			return Outcome{}, errors.Wrap(err, CodeCredentialMissing, "cannot read stored GitHub token")
		}
		if ok {
			token = stored
		}
	}
	if token == "" {
		return Outcome{}, errors.New(CodeCredentialMissing, "save a GitHub token first")
	}
	if c.Source == nil || c.Cache == nil {
		return Outcome{}, errors.New(errors.CodeInvalidConfig, "no repository source or cache configured")
	}

	repos, err := c.Source.FetchAll(ctx, token)
	if err != nil {
		return Outcome{}, errors.Wrap(err, CodeRemoteFetchFailed, "failed to fetch repositories")
	}
	if err := c.Cache.Replace(ctx, repos); err != nil {
		return Outcome{}, errors.Wrap(err, CodeCacheWriteFailed, "failed to write repository cache")
	}
	return Outcome{
		Message: fmt.Sprintf("Repository cache updated with %d repositories", len(repos)),
		Count:   len(repos),
	}, nil
}

func (c *Coordinator) open(url string) (Outcome, error) {
	if strings.TrimSpace(url) == "" {
		return Outcome{}, errors.New(errors.CodeInvalidInput, "no URL to open")
	}
	if c.Opener == nil {
		return Outcome{}, errors.New(errors.CodeInvalidConfig, "no URL opener configured")
	}
	if err := c.Opener.Open(url); err != nil {
		return Outcome{}, errors.Wrap(err, errors.CodeExecutionFailed, "failed to open URL")
	}
	c.logger().WithFields(logrus.Fields{"url": url}).Debug("Opened URL")
	return Outcome{Message: "Opened " + url}, nil
}
