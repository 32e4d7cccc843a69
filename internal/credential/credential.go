// Package credential stores the GitHub token used to build the cache.
package credential

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/errors"
)

// CodeWrite means a credential could not be persisted.
const CodeWrite errors.ErrorCode = "CREDENTIAL_WRITE_FAILED"

// Store holds a single opaque secret.
type Store interface {
	// Get returns the stored secret; ok is false when none is stored.
	Get() (secret string, ok bool, err error)
	Set(secret string) error
}

// FileStore keeps the secret in a file readable only by the current user.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the token file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the token file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get reads the token file. A missing or blank file means no credential.
func (s *FileStore) Get() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, errors.CodeInternal, "cannot read token file")
	}
	token := strings.TrimSpace(string(data))
	return token, token != "", nil
}

// Set writes secret to the token file with mode 0600.
func (s *FileStore) Set(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New(errors.CodeInvalidInput, "token must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, CodeWrite, "cannot create token directory")
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.WriteFile(s.path, []byte(secret), 0o600); err != nil {
		return errors.Wrap(err, CodeWrite, "cannot write token file")
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		return errors.Wrap(err, CodeWrite, "cannot restrict token file permissions")
	}
	return nil
}

// EnvStore prefers a token supplied through the environment over the
// wrapped store. Set always goes to the wrapped store.
type EnvStore struct {
	Token string
	Next  Store
}

// Get returns Token when it is set, otherwise the wrapped store's secret.
func (s EnvStore) Get() (string, bool, error) {
	if token := strings.TrimSpace(s.Token); token != "" {
		return token, true, nil
	}
	if s.Next == nil {
		return "", false, nil
	}
	return s.Next.Get()
}

// Set persists secret in the wrapped store.
func (s EnvStore) Set(secret string) error {
	if s.Next == nil {
		return errors.New(errors.CodeNotImplemented, "no writable credential store configured")
	}
	return s.Next.Set(secret)
}

// Redact hides all but the last four characters of a secret.
func Redact(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
