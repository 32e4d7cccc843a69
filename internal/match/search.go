package match

import (
	"sort"
	"strings"

	"github.com/stahnma/gh-launch/internal/github"
)

// Threshold is the score a fuzzy match must exceed to be kept.
const Threshold = 25

// Class tells how a repository matched.
type Class int

const (
	// Exact means the name starts with the query.
	Exact Class = iota
	// Fuzzy means the name scored above Threshold.
	Fuzzy
)

func (c Class) String() string {
	switch c {
	case Exact:
		return "exact"
	case Fuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// Match is one ranked repository. Score is 0 for exact matches, which are
// not scored.
type Match struct {
	Repo  github.Repo
	Class Class
	Score float64
}

// Result is the ranked output of Search.
type Result []Match

// Exact returns the exact matches.
func (r Result) Exact() []Match {
	return r.class(Exact)
}

// Fuzzy returns the fuzzy matches.
func (r Result) Fuzzy() []Match {
	return r.class(Fuzzy)
}

func (r Result) class(c Class) []Match {
	var out []Match
	for _, m := range r {
		if m.Class == c {
			out = append(out, m)
		}
	}
	return out
}

// Search ranks repos against query. An empty query matches nothing.
func Search(repos []github.Repo, query string) Result {
	q := Normalize(query)
	if q == "" || len(repos) == 0 {
		return nil
	}
	qTokens := Tokens(q)

	var exact, fuzzy Result
	for _, repo := range repos {
		name := Normalize(repo.Name)
		if strings.HasPrefix(name, q) {
			exact = append(exact, Match{Repo: repo, Class: Exact})
			continue
		}
		score := tokenSetRatio(Tokens(name), qTokens)
		if score > Threshold {
			fuzzy = append(fuzzy, Match{Repo: repo, Class: Fuzzy, Score: score})
		}
	}

	sort.SliceStable(fuzzy, func(i, j int) bool {
		return fuzzy[i].Score > fuzzy[j].Score
	})
	return append(exact, fuzzy...)
}
