package github

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"github.com/jmgilman/go/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// perPage is the largest page size the repositories endpoint accepts.
	perPage = 100

	// pageWorkers bounds concurrent page requests once the page count is known.
	pageWorkers = 4
)

// Source fetches the complete repository list for a credential.
type Source struct {
	// NewClient builds an authenticated client for a token. Defaults to NewClient.
	NewClient func(token string) Client
	Log       logrus.FieldLogger
}

// NewSource returns a Source backed by the real GitHub API.
func NewSource(log logrus.FieldLogger) *Source {
	return &Source{NewClient: NewClient, Log: log}
}

// FetchAll returns every repository visible to the credential, in the order
// GitHub reports them. It never returns a partial list: any page failure
// fails the whole fetch.
func (s *Source) FetchAll(ctx context.Context, token string) ([]Repo, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New(errors.CodeUnauthorized, "no GitHub token available")
	}
	newClient := s.NewClient
	if newClient == nil {
		newClient = NewClient
	}
	client := newClient(token)

	first, resp, err := client.ListRepositories(ctx, 1, perPage)
	if err != nil {
		return nil, wrapError(err, resp, "failed to list repositories")
	}
	pages := [][]*gh.Repository{first}

	switch {
	case resp != nil && resp.LastPage > 1:
		rest, err := s.fetchPages(ctx, client, 2, resp.LastPage)
		if err != nil {
			return nil, err
		}
		pages = append(pages, rest...)
	case resp != nil && resp.NextPage != 0:
		for next := resp.NextPage; next != 0; {
			page, r, err := client.ListRepositories(ctx, next, perPage)
			if err != nil {
				return nil, wrapError(err, r, "failed to list repositories")
			}
			pages = append(pages, page)
			if r == nil {
				break
			}
			next = r.NextPage
		}
	}

	var repos []Repo
	for _, page := range pages {
		for _, r := range page {
			if r == nil {
				continue
			}
			repos = append(repos, convertRepository(r))
		}
	}
	s.logger().WithField("count", len(repos)).WithField("pages", len(pages)).Debug("Fetched repositories")
	return repos, nil
}

// fetchPages fetches pages from..to concurrently and returns them in page order.
func (s *Source) fetchPages(ctx context.Context, client Client, from, to int) ([][]*gh.Repository, error) {
	pages := make([][]*gh.Repository, to-from+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pageWorkers)

	for page := from; page <= to; page++ {
		g.Go(func() error {
			repos, resp, err := client.ListRepositories(gctx, page, perPage)
			if err != nil {
				return wrapError(err, resp, "failed to list repositories")
			}
			pages[page-from] = repos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (s *Source) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func convertRepository(r *gh.Repository) Repo {
	return Repo{
		Name:     r.GetName(),
		FullName: r.GetFullName(),
		URL:      r.GetHTMLURL(),
	}
}
