// Package credstore persists the cached GitHub identity as a small JSON
// record at a project-local or user-global path.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the credential file name at both scopes.
const FileName = ".gitput_config.json"

// Scope identifies which of the two credential file locations is meant.
type Scope int

const (
	ScopeLocal Scope = iota
	ScopeGlobal
)

func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Credential is the persisted GitHub identity. All three fields must be
// non-empty before it is saved.
type Credential struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Valid reports whether every field is populated.
func (c Credential) Valid() bool {
	return c.Username != "" && c.Email != "" && c.Token != ""
}

// ReadError indicates a credential file exists but is not valid JSON. The
// caller warns and treats the credential as absent; the file is never
// silently ignored.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("credential file %s is corrupt: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Store reads and writes credentials at two injected paths. Paths are
// constructor arguments rather than package constants so tests can point the
// store at temporary directories.
type Store struct {
	localPath  string
	globalPath string
}

// NewStore creates a Store over explicit file paths.
func NewStore(localPath, globalPath string) *Store {
	return &Store{localPath: localPath, globalPath: globalPath}
}

// DefaultStore resolves the conventional locations: the credential file in
// workDir (local scope) and in the user home directory (global scope).
func DefaultStore(workDir string) (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return NewStore(filepath.Join(workDir, FileName), filepath.Join(home, FileName)), nil
}

// Path returns the file path backing the given scope.
func (s *Store) Path(scope Scope) string {
	if scope == ScopeLocal {
		return s.localPath
	}
	return s.globalPath
}

// ActivePath reports which file Load would read: local wins over global when
// both exist. found is false when neither file exists.
func (s *Store) ActivePath() (path string, scope Scope, found bool) {
	if fileExists(s.localPath) {
		return s.localPath, ScopeLocal, true
	}
	if fileExists(s.globalPath) {
		return s.globalPath, ScopeGlobal, true
	}
	return "", ScopeGlobal, false
}

// Load reads the highest-precedence credential file. A missing file is not
// an error; a present but malformed file returns a ReadError.
func (s *Store) Load() (Credential, Scope, bool, error) {
	path, scope, found := s.ActivePath()
	if !found {
		return Credential{}, scope, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Credential{}, scope, false, &ReadError{Path: path, Err: err}
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, scope, false, &ReadError{Path: path, Err: err}
	}
	return cred, scope, true, nil
}

// Save overwrites the credential file at the given scope.
func (s *Store) Save(cred Credential, scope Scope) error {
	if !cred.Valid() {
		return errors.New("credential has empty fields, refusing to save")
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode credential: %w", err)
	}

	path := s.Path(scope)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write credential file %s: %w", path, err)
	}
	return nil
}

// Reset deletes the cached credentials. The file Load would have returned is
// removed first; any file at the other scope is removed as well so a stale
// lower-precedence credential cannot silently take effect on the next run.
// Returns the paths that were removed.
func (s *Store) Reset() ([]string, error) {
	var removed []string
	for _, path := range []string{s.localPath, s.globalPath} {
		if !fileExists(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("cannot remove credential file %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
