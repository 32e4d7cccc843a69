package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

// mockClient implements Client for testing.
type mockClient struct {
	listRepositoriesFn func(ctx context.Context, page, perPage int) ([]*gh.Repository, *gh.Response, error)
}

func (m *mockClient) ListRepositories(ctx context.Context, page, perPage int) ([]*gh.Repository, *gh.Response, error) {
	return m.listRepositoriesFn(ctx, page, perPage)
}

// emptyResponse returns a *gh.Response that signals no more pages.
func emptyResponse() *gh.Response {
	return &gh.Response{
		Response: &http.Response{StatusCode: 200},
	}
}

// makeRepo builds a go-github Repository for owner/name.
func makeRepo(owner, name string) *gh.Repository {
	return &gh.Repository{
		Name:     gh.Ptr(name),
		FullName: gh.Ptr(owner + "/" + name),
		HTMLURL:  gh.Ptr("https://github.com/" + owner + "/" + name),
	}
}

// sourceFor returns a Source whose clients are always m.
func sourceFor(m *mockClient) *Source {
	return &Source{NewClient: func(string) Client { return m }}
}
