// Package cache holds the local snapshot of the user's repositories.
//
// A snapshot is either absent or complete. The only mutation is Replace,
// which swaps the whole snapshot atomically; readers see the previous
// snapshot until the new one is fully written.
package cache

import (
	"context"

	"github.com/jmgilman/go/errors"
	"github.com/stahnma/gh-launch/internal/github"
)

// Error codes reported by stores.
const (
	// CodeCorrupt means a snapshot exists but cannot be decoded.
	CodeCorrupt errors.ErrorCode = "CACHE_CORRUPT"

	// CodeRead means the snapshot could not be read from storage.
	CodeRead errors.ErrorCode = "CACHE_READ_FAILED"

	// CodeWrite means a replacement snapshot could not be written.
	CodeWrite errors.ErrorCode = "CACHE_WRITE_FAILED"
)

// Store is a durable copy of all repository records.
type Store interface {
	// Load returns the stored snapshot. A missing snapshot is reported as
	// ok == false with a nil error.
	Load(ctx context.Context) (repos []github.Repo, ok bool, err error)

	// Replace overwrites the whole snapshot.
	Replace(ctx context.Context, repos []github.Repo) error

	// Exists reports whether a snapshot is present, without decoding it.
	Exists(ctx context.Context) (bool, error)
}

// IsCorrupt reports whether err means the stored snapshot is damaged.
func IsCorrupt(err error) bool {
	return errors.GetCode(err) == CodeCorrupt
}
