package launcher

import (
	"context"
	"sync"

	"github.com/stahnma/gh-launch/internal/github"
)

// fakeCredentials is an in-memory credential.Store.
type fakeCredentials struct {
	mu     sync.Mutex
	token  string
	getErr error
	setErr error
}

func (f *fakeCredentials) Get() (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.token, f.token != "", nil
}

func (f *fakeCredentials) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.token = token
	return nil
}

// fakeCache is an in-memory cache.Store.
type fakeCache struct {
	mu         sync.Mutex
	repos      []github.Repo
	present    bool
	loadErr    error
	replaceErr error
	replaced   int
}

func (f *fakeCache) Load(context.Context) ([]github.Repo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	return f.repos, f.present, nil
}

func (f *fakeCache) Replace(_ context.Context, repos []github.Repo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.repos = append([]github.Repo(nil), repos...)
	f.present = true
	f.replaced++
	return nil
}

func (f *fakeCache) Exists(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.present, nil
}

// fakeSource returns a fixed list and records the tokens it was called with.
type fakeSource struct {
	mu     sync.Mutex
	repos  []github.Repo
	err    error
	tokens []string
}

func (f *fakeSource) FetchAll(_ context.Context, token string) ([]github.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	return f.repos, nil
}

func sampleRepos() []github.Repo {
	return []github.Repo{
		{Name: "albert-github", FullName: "alice/albert-github", URL: "https://github.com/alice/albert-github"},
		{Name: "albert-python", FullName: "alice/albert-python", URL: "https://github.com/alice/albert-python"},
		{Name: "other-tool", FullName: "alice/other-tool", URL: "https://github.com/alice/other-tool"},
	}
}

type fixture struct {
	creds  *fakeCredentials
	cache  *fakeCache
	source *fakeSource
	opened []string
	c      *Coordinator
}

// newFixture returns a coordinator with a stored token and a populated cache.
func newFixture() *fixture {
	f := &fixture{
		creds:  &fakeCredentials{token: "ghp_stored"},
		cache:  &fakeCache{repos: sampleRepos(), present: true},
		source: &fakeSource{repos: sampleRepos()},
	}
	f.c = &Coordinator{
		Credentials: f.creds,
		Cache:       f.cache,
		Source:      f.source,
		Opener: OpenerFunc(func(url string) error {
			f.opened = append(f.opened, url)
			return nil
		}),
		Icon: "icon.svg",
	}
	return f
}

func kinds(items []Item) []Kind {
	var out []Kind
	for _, it := range items {
		for _, a := range it.Actions {
			out = append(out, a.Kind)
		}
	}
	return out
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}
