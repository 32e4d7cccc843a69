package github

import (
	"context"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// Client defines the GitHub API methods used by this application.
type Client interface {
	ListRepositories(ctx context.Context, page, perPage int) ([]*gh.Repository, *gh.Response, error)
}

// realClient wraps the go-github client to implement Client.
type realClient struct {
	inner *gh.Client
}

// NewClient creates a new GitHub API client authenticated with the given token.
func NewClient(token string) Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	return &realClient{inner: gh.NewClient(httpClient)}
}

// ListRepositories lists one page of repositories visible to the
// authenticated user: owned, collaborator and organization member.
func (c *realClient) ListRepositories(ctx context.Context, page, perPage int) ([]*gh.Repository, *gh.Response, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}
	return c.inner.Repositories.ListByAuthenticatedUser(ctx, opts)
}
