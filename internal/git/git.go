// Package git provides typed operations over the git command line for the
// repository-connection workflow.
package git

import (
	"strings"

	"github.com/samzong/gitput/internal/gitcmd"
)

// Client runs git operations inside a fixed working directory.
type Client struct {
	runner gitcmd.Runner
}

// NewClient creates a Client rooted at dir. Verbose enables command logging
// on stderr.
func NewClient(dir string, verbose bool) *Client {
	return &Client{runner: gitcmd.Runner{Dir: dir, Verbose: verbose}}
}

// NewClientWithEnv is NewClient with extra environment entries appended to
// every git invocation, such as GIT_CONFIG_GLOBAL for isolated test setups.
func NewClientWithEnv(dir string, verbose bool, env []string) *Client {
	return &Client{runner: gitcmd.Runner{Dir: dir, Verbose: verbose, Env: env}}
}

// Dir returns the working directory the client operates in.
func (c *Client) Dir() string {
	return c.runner.Dir
}

// IsRepository reports whether the working directory is inside a git work
// tree. A non-zero exit means "not a repository", never an error.
func (c *Client) IsRepository() bool {
	_, err := c.runner.Run("rev-parse", "--is-inside-work-tree")
	return err == nil
}

// Init initializes a new repository in the working directory.
func (c *Client) Init() error {
	result, err := c.runner.RunLogged("init")
	if err != nil {
		return wrapError("git init failed", result, err)
	}
	return nil
}

// Remotes returns the trimmed output of `git remote -v`. Empty output means
// no remotes are configured.
func (c *Client) Remotes() (string, error) {
	result, err := c.runner.Run("remote", "-v")
	if err != nil {
		return "", wrapError("failed to list remotes", result, err)
	}
	return result.StdoutString(true), nil
}

// OriginURL returns the fetch URL of the "origin" remote, or "" when origin
// is not configured.
func (c *Client) OriginURL() (string, error) {
	remotes, err := c.Remotes()
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(remotes, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "origin" {
			return fields[1], nil
		}
	}
	return "", nil
}

// HasOrigin reports whether a remote named "origin" exists.
func (c *Client) HasOrigin() (bool, error) {
	url, err := c.OriginURL()
	if err != nil {
		return false, err
	}
	return url != "", nil
}

// AddRemote registers a new named remote.
func (c *Client) AddRemote(name, url string) error {
	result, err := c.runner.RunLogged("remote", "add", name, url)
	if err != nil {
		return wrapError("failed to add remote", result, err)
	}
	return nil
}

// RemoveRemote deletes a named remote. Removing a nonexistent remote is
// tolerated.
func (c *Client) RemoveRemote(name string) error {
	result, err := c.runner.RunLogged("remote", "remove", name)
	if err != nil {
		if strings.Contains(result.StderrString(true), "No such remote") {
			return nil
		}
		return wrapError("failed to remove remote", result, err)
	}
	return nil
}

// HasChanges reports whether the working tree has staged, unstaged, or
// untracked changes.
func (c *Client) HasChanges() (bool, error) {
	result, err := c.runner.Run("status", "--porcelain")
	if err != nil {
		return false, wrapError("failed to check working tree status", result, err)
	}
	return result.StdoutString(true) != "", nil
}

// AddAll stages every change in the working directory.
func (c *Client) AddAll() error {
	result, err := c.runner.RunLogged("add", ".")
	if err != nil {
		return wrapError("git add failed", result, err)
	}
	return nil
}

// Commit records the staged changes with the given message.
func (c *Client) Commit(message string) error {
	result, err := c.runner.RunLogged("commit", "-m", message)
	if err != nil {
		return wrapError("git commit failed", result, err)
	}
	return nil
}

// RenameBranch forcibly renames the current branch.
func (c *Client) RenameBranch(branch string) error {
	result, err := c.runner.RunLogged("branch", "-M", branch)
	if err != nil {
		return wrapError("failed to rename branch", result, err)
	}
	return nil
}

// Push sets the upstream and pushes the branch to the named remote.
func (c *Client) Push(remote, branch string) error {
	result, err := c.runner.RunLogged("push", "-u", remote, branch)
	if err != nil {
		return wrapError("git push failed", result, err)
	}
	return nil
}

// HasRemoteHistory reports whether any remote-tracking commits exist. This
// is how the workflow decides a push is a meaningful next step; it is an
// approximation, not proof that the local branch is ahead. A repository
// without commits exits non-zero here, which simply means "no history".
func (c *Client) HasRemoteHistory() (bool, error) {
	result, err := c.runner.Run("log", "--remotes", "--pretty=oneline")
	if err != nil {
		return false, nil
	}
	return result.StdoutString(true) != "", nil
}

// SetGlobalIdentity writes user.name and user.email into the global git
// config.
func (c *Client) SetGlobalIdentity(name, email string) error {
	if result, err := c.runner.RunLogged("config", "--global", "user.name", name); err != nil {
		return wrapError("failed to set user.name", result, err)
	}
	if result, err := c.runner.RunLogged("config", "--global", "user.email", email); err != nil {
		return wrapError("failed to set user.email", result, err)
	}
	return nil
}
