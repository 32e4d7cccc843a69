package github

import "strings"

// Repo is one repository of the authenticated user, as mirrored into the
// local cache.
type Repo struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	URL      string `json:"url"`
}

// Owner returns the owner part of FullName, or "" when FullName is not
// owner-qualified.
func (r Repo) Owner() string {
	owner, _, ok := strings.Cut(r.FullName, "/")
	if !ok {
		return ""
	}
	return owner
}
