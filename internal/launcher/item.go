package launcher

import "github.com/stahnma/gh-launch/internal/credential"

// Kind names the side effect an Action triggers.
type Kind string

const (
	KindSaveToken    Kind = "save-token"
	KindBuildCache   Kind = "build-cache"
	KindRebuildCache Kind = "rebuild-cache"
	KindRefreshCache Kind = "refresh-cache"
	KindOpenURL      Kind = "open-url"
)

// Kinds lists every action kind.
var Kinds = []Kind{KindSaveToken, KindBuildCache, KindRebuildCache, KindRefreshCache, KindOpenURL}

// carriesSecret reports whether Target may hold a credential.
func (k Kind) carriesSecret() bool {
	switch k {
	case KindSaveToken, KindBuildCache, KindRebuildCache, KindRefreshCache:
		return true
	}
	return false
}

// Action is a side effect bound to an Item. It is a plain value built when
// the item is built, so each item's action refers to its own target.
type Action struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
	// Target is the URL for KindOpenURL and the candidate token for the
	// credential and cache kinds. An empty token means "use the stored one".
	Target string `json:"target,omitempty"`
}

// String describes the action without revealing secrets.
func (a Action) String() string {
	target := a.Target
	if a.Kind.carriesSecret() {
		target = credential.Redact(target)
	}
	if target == "" {
		return string(a.Kind)
	}
	return string(a.Kind) + " " + target
}

// Item is one entry for the display surface.
type Item struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Subtext string   `json:"subtext,omitempty"`
	Icon    string   `json:"icon,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}
