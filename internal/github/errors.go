package github

import (
	stderrors "errors"
	"net/http"

	gh "github.com/google/go-github/v68/github"
	"github.com/jmgilman/go/errors"
)

// wrapError classifies a go-github error by HTTP status.
func wrapError(err error, resp *gh.Response, message string) error {
	if err == nil {
		return nil
	}

	statusCode := 0
	if resp != nil && resp.Response != nil {
		statusCode = resp.StatusCode
	}
	var ghErr *gh.ErrorResponse
	if stderrors.As(err, &ghErr) && ghErr.Response != nil {
		statusCode = ghErr.Response.StatusCode
	}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if stderrors.As(err, &rateErr) || stderrors.As(err, &abuseErr) {
		return errors.Wrap(err, errors.CodeRateLimit, message)
	}

	var code errors.ErrorCode
	switch {
	case statusCode == 0:
		code = errors.CodeNetwork
	case statusCode == http.StatusUnauthorized:
		code = errors.CodeUnauthorized
	case statusCode == http.StatusForbidden:
		code = errors.CodeForbidden
	case statusCode == http.StatusNotFound:
		code = errors.CodeNotFound
	case statusCode == http.StatusTooManyRequests:
		code = errors.CodeRateLimit
	case statusCode >= 500:
		code = errors.CodeNetwork
	default:
		code = errors.CodeInternal
	}

	wrapped := errors.Wrap(err, code, message)
	if statusCode != 0 {
		return errors.WithContext(wrapped, "status", statusCode)
	}
	return wrapped
}
