package launcher

import (
	"github.com/jmgilman/go/errors"
	"github.com/stahnma/gh-launch/internal/cache"
)

// Failure kinds surfaced by Execute and Evaluate.
const (
	CodeCredentialMissing errors.ErrorCode = "CREDENTIAL_MISSING"
	CodeRemoteFetchFailed errors.ErrorCode = "REMOTE_FETCH_FAILED"
	CodeCacheWriteFailed                   = cache.CodeWrite
	CodeCacheCorrupt                       = cache.CodeCorrupt
)

// FailureItem turns a failed action into a visible display item.
func FailureItem(a Action, err error, icon string) Item {
	var subtext string
	switch errors.GetCode(err) {
	case CodeRemoteFetchFailed:
		subtext = "Could not fetch repositories from GitHub: "
	case CodeCacheWriteFailed:
		subtext = "Could not write the repository cache: "
	case CodeCredentialMissing:
		subtext = "No GitHub token is stored: "
	default:
		subtext = "Action failed: "
	}
	label := a.Label
	if label == "" {
		label = string(a.Kind)
	}
	return Item{
		ID:      itemID,
		Label:   label + " failed",
		Subtext: subtext + errorMessage(err),
		Icon:    icon,
	}
}

// errorMessage returns the innermost useful message of err.
func errorMessage(err error) string {
	var perr errors.PlatformError
	if errors.As(err, &perr) {
		if cause := perr.Unwrap(); cause != nil {
			return perr.Message() + ": " + cause.Error()
		}
		return perr.Message()
	}
	return err.Error()
}
