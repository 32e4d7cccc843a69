// Package launcher turns a typed query into display items and runs the
// actions bound to them.
//
// Evaluate is a pure pass over the stores: it reads the credential and the
// cache snapshot and never changes either. Every change is bound to an
// Action and happens only when Execute or Dispatch is called for it.
package launcher

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stahnma/gh-launch/internal/cache"
	"github.com/stahnma/gh-launch/internal/credential"
	"github.com/stahnma/gh-launch/internal/github"
	"github.com/stahnma/gh-launch/internal/match"
)

// DefaultRefreshKeyword is the query that offers a cache refresh.
const DefaultRefreshKeyword = "refresh cache"

const (
	itemID    = "gh-launch"
	itemTitle = "GitHub repositories"
)

// Source supplies the full repository list for a credential.
type Source interface {
	FetchAll(ctx context.Context, token string) ([]github.Repo, error)
}

// Opener opens a URL, usually in the browser.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open calls f(url).
func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// Coordinator evaluates queries against the credential and cache stores.
type Coordinator struct {
	Credentials credential.Store
	Cache       cache.Store
	Source      Source
	Opener      Opener

	// RefreshKeyword defaults to DefaultRefreshKeyword.
	RefreshKeyword string
	Icon           string
	Log            logrus.FieldLogger
}

// cacheState is the outcome of reading the snapshot during evaluation.
type cacheState int

const (
	cacheReady cacheState = iota
	cacheMissing
	cacheBroken
)

// Evaluate builds the display items for query. Prompts for a missing
// credential and a missing or damaged cache come first and do not stop the
// evaluation; an empty query yields a single placeholder after them.
func (c *Coordinator) Evaluate(ctx context.Context, query string) []Item {
	trimmed := strings.TrimSpace(query)
	var items []Item

	hasToken := c.hasCredential()
	if !hasToken {
		items = append(items, c.prompt(
			"Paste your GitHub token and press [enter] to save it",
			Action{Kind: KindSaveToken, Label: "Save token", Target: trimmed},
		))
	}

	// Without a stored token the typed text is the candidate token for the
	// cache actions as well.
	candidate := ""
	if !hasToken {
		candidate = trimmed
	}

	repos, state, loadErr := c.loadCache(ctx)
	switch state {
	case cacheMissing:
		items = append(items, c.prompt(
			"Press [enter] to initialize the repository cache (may take a few seconds)",
			Action{Kind: KindBuildCache, Label: "Create repository cache", Target: candidate},
		))
	case cacheBroken:
		subtext := "The repository cache could not be read. Press [enter] to rebuild it (may take a few seconds)"
		if cache.IsCorrupt(loadErr) {
			subtext = "The repository cache is damaged. Press [enter] to rebuild it (may take a few seconds)"
		}
		items = append(items, c.prompt(
			subtext,
			Action{Kind: KindRebuildCache, Label: "Rebuild repository cache", Target: candidate},
		))
	}

	if trimmed == "" {
		return append(items, Item{
			ID:      itemID,
			Label:   "...",
			Subtext: "Search for a GitHub user repository name",
			Icon:    c.Icon,
		})
	}

	if c.IsRefresh(trimmed) {
		items = append(items, c.prompt(
			"Press [enter] to refresh the local repository cache (may take a few seconds)",
			Action{Kind: KindRefreshCache, Label: "Refresh repository cache", Target: candidate},
		))
	}

	if state != cacheReady {
		return items
	}

	result := match.Search(repos, trimmed)
	c.logger().WithFields(logrus.Fields{
		"exact": len(result.Exact()),
		"fuzzy": len(result.Fuzzy()),
	}).Debug("Searched repository cache")

	if len(result) == 0 {
		return append(items, Item{
			ID:    itemID,
			Label: "No repositories matching search string",
			Icon:  c.Icon,
		})
	}
	for _, m := range result {
		items = append(items, c.resultItem(m))
	}
	return items
}

// IsRefresh reports whether query is the refresh keyword, ignoring case and
// surrounding whitespace.
func (c *Coordinator) IsRefresh(query string) bool {
	keyword := c.RefreshKeyword
	if strings.TrimSpace(keyword) == "" {
		keyword = DefaultRefreshKeyword
	}
	return match.Normalize(query) == match.Normalize(keyword)
}

func (c *Coordinator) resultItem(m match.Match) Item {
	label := "Open exact match"
	if m.Class == match.Fuzzy {
		label = "Open fuzzy match"
	}
	return Item{
		ID:      m.Repo.FullName,
		Label:   m.Repo.Name,
		Subtext: m.Repo.FullName,
		Icon:    c.Icon,
		Actions: []Action{{Kind: KindOpenURL, Label: label, Target: m.Repo.URL}},
	}
}

func (c *Coordinator) prompt(subtext string, a Action) Item {
	return Item{
		ID:      itemID,
		Label:   itemTitle,
		Subtext: subtext,
		Icon:    c.Icon,
		Actions: []Action{a},
	}
}

func (c *Coordinator) hasCredential() bool {
	if c.Credentials == nil {
		return false
	}
	_, ok, err := c.Credentials.Get()
	if err != nil {
		c.logger().WithError(err).Warn("Cannot read stored GitHub token")
		return false
	}
	return ok
}

func (c *Coordinator) loadCache(ctx context.Context) ([]github.Repo, cacheState, error) {
	if c.Cache == nil {
		return nil, cacheMissing, nil
	}
	repos, ok, err := c.Cache.Load(ctx)
	if err != nil {
		c.logger().WithError(err).Warn("Cannot load repository cache")
		return nil, cacheBroken, err
	}
	if !ok {
		return nil, cacheMissing, nil
	}
	return repos, cacheReady, nil
}

func (c *Coordinator) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
