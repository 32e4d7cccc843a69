package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/jmgilman/go/errors"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/stahnma/gh-launch/internal/github"
)

// lockTimeout bounds how long Replace waits for another writer.
const lockTimeout = 10 * time.Second

// snapshot is a decoded file together with the stat it was decoded from.
type snapshot struct {
	modTime time.Time
	size    int64
	repos   []github.Repo
}

// FileStore keeps the snapshot as a JSON array in a single file.
type FileStore struct {
	path string
	memo *gocache.Cache
	log  logrus.FieldLogger
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created on the first Replace.
func NewFileStore(path string, log logrus.FieldLogger) *FileStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileStore{
		path: path,
		memo: gocache.New(gocache.NoExpiration, 0),
		log:  log.WithField("cache", path),
	}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. Decoded snapshots are reused while the file's
// modification time and size are unchanged, so the returned slice is shared
// and must not be modified.
func (s *FileStore) Load(_ context.Context) ([]github.Repo, bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, CodeRead, "cannot stat repository cache")
	}

	if val, found := s.memo.Get(s.path); found {
		if snap, ok := val.(snapshot); ok && snap.modTime.Equal(info.ModTime()) && snap.size == info.Size() {
			s.log.Debug("Cache hit")
			return snap.repos, true, nil
		}
	}
	s.log.Debug("Cache miss")

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, CodeRead, "cannot read repository cache")
	}
	repos, err := decode(data)
	if err != nil {
		s.log.WithError(err).Error("Repository cache is corrupt")
		return nil, false, err
	}
	s.memo.Set(s.path, snapshot{modTime: info.ModTime(), size: info.Size(), repos: repos}, gocache.NoExpiration)
	return repos, true, nil
}

// Exists reports whether the snapshot file is present.
func (s *FileStore) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrap(err, CodeRead, "cannot stat repository cache")
}

// Replace writes repos to a temporary file next to the snapshot and renames
// it into place. Concurrent writers, including other processes, are
// serialized through a lock file; the last completed write wins.
func (s *FileStore) Replace(ctx context.Context, repos []github.Repo) error {
	data, err := encode(repos)
	if err != nil {
		return errors.Wrap(err, CodeWrite, "cannot encode repository cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, CodeWrite, "cannot create cache directory")
	}

	lock := flock.New(s.path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return errors.Wrap(err, CodeWrite, "cannot lock repository cache")
	}
	if !locked {
		return errors.New(CodeWrite, "another cache write is in progress")
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, CodeWrite, "cannot create temporary cache file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, CodeWrite, "cannot write repository cache")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, CodeWrite, "cannot sync repository cache")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, CodeWrite, "cannot close repository cache")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrap(err, CodeWrite, "cannot replace repository cache")
	}

	s.memo.Delete(s.path)
	s.log.WithField("count", len(repos)).Info("Repository cache replaced")
	return nil
}

func encode(repos []github.Repo) ([]byte, error) {
	if repos == nil {
		repos = []github.Repo{}
	}
	return json.MarshalIndent(repos, "", "  ")
}

func decode(data []byte) ([]github.Repo, error) {
	var repos []github.Repo
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&repos); err != nil {
		return nil, errors.Wrap(err, CodeCorrupt, "repository cache is not a valid snapshot")
	}
	if dec.More() {
		return nil, errors.New(CodeCorrupt, "repository cache has trailing data")
	}
	if repos == nil {
		// A literal null is not a snapshot.
		return nil, errors.New(CodeCorrupt, "repository cache is empty")
	}
	return repos, nil
}
