// Package workflow sequences credential handling, repository inspection, and
// git/GitHub operations into the interactive session.
package workflow

import (
	"context"

	"github.com/samzong/gitput/internal/credstore"
)

// GitClient abstracts git operations for testability.
type GitClient interface {
	Dir() string
	IsRepository() bool
	Init() error
	Remotes() (string, error)
	OriginURL() (string, error)
	HasOrigin() (bool, error)
	AddRemote(name, url string) error
	RemoveRemote(name string) error
	HasChanges() (bool, error)
	AddAll() error
	Commit(message string) error
	RenameBranch(branch string) error
	Push(remote, branch string) error
	HasRemoteHistory() (bool, error)
	SetGlobalIdentity(name, email string) error
}

// HubClient abstracts the two GitHub API calls.
type HubClient interface {
	ValidateToken(ctx context.Context, token string) (string, error)
	CreateRepository(ctx context.Context, token, name string, private bool) (string, error)
}

// CredentialStore abstracts credential persistence.
type CredentialStore interface {
	Load() (credstore.Credential, credstore.Scope, bool, error)
	Save(cred credstore.Credential, scope credstore.Scope) error
	Reset() ([]string, error)
	ActivePath() (path string, scope credstore.Scope, found bool)
}

// Prompter is the terminal UI collaborator. The workflow never reads the
// terminal itself.
type Prompter interface {
	Input(title, defaultValue string) (string, error)
	Secret(title string) (string, error)
	Confirm(title string, defaultYes bool) (bool, error)
	Select(title string, choices []Choice) (Choice, error)
}
