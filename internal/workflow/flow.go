package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/samzong/gitput/internal/credstore"
)

// Options tunes a session. Zero values fall back to sane defaults.
type Options struct {
	DefaultBranch   string
	CommitMessage   string
	MaxAuthAttempts int
	OutWriter       io.Writer
	ErrWriter       io.Writer
}

func (o Options) withDefaults() Options {
	if o.DefaultBranch == "" {
		o.DefaultBranch = "main"
	}
	if o.CommitMessage == "" {
		o.CommitMessage = "Initial commit"
	}
	if o.MaxAuthAttempts <= 0 {
		o.MaxAuthAttempts = 3
	}
	if o.OutWriter == nil {
		o.OutWriter = os.Stdout
	}
	if o.ErrWriter == nil {
		o.ErrWriter = os.Stderr
	}
	return o
}

// Flow drives one interactive session: authenticate, then loop on the action
// menu until the user exits. Failures inside a menu action are reported and
// return control to the menu; only authentication exhaustion ends the
// session with an error.
type Flow struct {
	git      GitClient
	hub      HubClient
	creds    CredentialStore
	prompter Prompter
	opts     Options
	cred     credstore.Credential
}

func NewFlow(git GitClient, hub HubClient, creds CredentialStore, prompter Prompter, opts Options) *Flow {
	return &Flow{
		git:      git,
		hub:      hub,
		creds:    creds,
		prompter: prompter,
		opts:     opts.withDefaults(),
	}
}

// Run executes the session until the user exits or the context is cancelled.
func (f *Flow) Run(ctx context.Context) error {
	fmt.Fprintln(f.opts.OutWriter, "👋 Welcome to gitput – your Git assistant!")

	if err := f.authenticate(ctx); err != nil {
		return err
	}

	return f.menuLoop(ctx)
}

// authenticate obtains a credential: the saved one when present and
// complete, otherwise prompt-and-validate with a bounded number of attempts.
// The global git identity is configured from the result either way.
func (f *Flow) authenticate(ctx context.Context) error {
	cred, scope, found, err := f.creds.Load()
	if err != nil {
		var readErr *credstore.ReadError
		if !errors.As(err, &readErr) {
			return err
		}
		f.warn("⚠️  %v — you will be asked to sign in again", readErr)
		found = false
	}

	if found && cred.Valid() {
		f.cred = cred
		f.success("✅ Signed in as %s (%s credentials)", cred.Username, scope)
		return f.git.SetGlobalIdentity(cred.Username, cred.Email)
	}

	if err := f.promptAndValidate(ctx, cred); err != nil {
		return err
	}
	return f.git.SetGlobalIdentity(f.cred.Username, f.cred.Email)
}

// promptAndValidate collects identity and token, validates the token against
// GitHub, and persists the credential. The canonical login reported by the
// service overwrites whatever the user typed. After MaxAuthAttempts failed
// validations the last error is returned and the session ends.
func (f *Flow) promptAndValidate(ctx context.Context, previous credstore.Credential) error {
	var lastErr error

	for attempt := 1; attempt <= f.opts.MaxAuthAttempts; attempt++ {
		if attempt > 1 {
			f.warn("⚠️  Attempt %d of %d", attempt, f.opts.MaxAuthAttempts)
		}

		username, err := f.prompter.Input("👤 GitHub username", previous.Username)
		if err != nil {
			return err
		}
		email, err := f.prompter.Input("📧 GitHub email", previous.Email)
		if err != nil {
			return err
		}
		token, err := f.prompter.Secret("🔑 Personal access token")
		if err != nil {
			return err
		}
		if username == "" || email == "" || token == "" {
			lastErr = errors.New("username, email, and token must all be provided")
			f.fail("❌ %v", lastErr)
			continue
		}

		login, err := f.hub.ValidateToken(ctx, token)
		if err != nil {
			lastErr = err
			f.fail("❌ Token validation failed: %v", err)
			continue
		}
		if login != username {
			f.warn("⚠️  GitHub reports your login as %q, using that instead of %q", login, username)
			username = login
		}

		cred := credstore.Credential{Username: username, Email: email, Token: token}

		scope := credstore.ScopeGlobal
		local, err := f.prompter.Confirm("Save credentials only for this project?", false)
		if err != nil {
			return err
		}
		if local {
			scope = credstore.ScopeLocal
		}
		if err := f.creds.Save(cred, scope); err != nil {
			return err
		}

		f.cred = cred
		f.success("✅ Signed in as %s, credentials saved (%s)", username, scope)
		return nil
	}

	return fmt.Errorf("authentication failed after %d attempts: %w", f.opts.MaxAuthAttempts, lastErr)
}

func (f *Flow) menuLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		choices, err := f.menuChoices()
		if err != nil {
			f.fail("❌ Cannot inspect the repository: %v", err)
			choices = []Choice{ChoiceStatus, ChoiceSwitchAccount, ChoiceReset, ChoiceExit}
		}

		choice, err := f.prompter.Select("What do you want to do?", choices)
		if err != nil {
			return err
		}

		switch choice {
		case ChoiceExit:
			fmt.Fprintln(f.opts.OutWriter, "Bye! 👋")
			return nil
		case ChoiceInit:
			f.contain(f.initRepository())
		case ChoiceAddRemote:
			f.contain(f.connectRemote(ctx))
		case ChoiceCommit:
			f.contain(f.commitChanges())
		case ChoicePush:
			f.contain(f.pushBranch())
		case ChoiceStatus:
			f.contain(f.printStatus())
		case ChoiceSwitchAccount:
			f.contain(f.switchAccount(ctx))
		case ChoiceReset:
			f.contain(f.resetCredentials())
		}
	}
}

// menuChoices is the applicable action set plus the always-available meta
// entries.
func (f *Flow) menuChoices() ([]Choice, error) {
	actions, err := Inspect(f.git)
	if err != nil {
		return nil, err
	}

	choices := make([]Choice, 0, len(actions)+4)
	for _, action := range actions {
		choices = append(choices, actionChoices[action])
	}
	return append(choices, ChoiceStatus, ChoiceSwitchAccount, ChoiceReset, ChoiceExit), nil
}

// contain reports an action failure and hands control back to the menu.
func (f *Flow) contain(err error) {
	if err != nil {
		f.fail("❌ %v", err)
	}
}

func (f *Flow) initRepository() error {
	if err := f.git.Init(); err != nil {
		return err
	}
	f.success("✅ Initialized empty git repository in %s", f.git.Dir())
	return nil
}

// connectRemote runs the CONNECTING step: create a new GitHub repository or
// take an existing URL, then reconcile the origin remote with it.
func (f *Flow) connectRemote(ctx context.Context) error {
	mode, err := f.prompter.Select("How do you want to connect?", []Choice{
		ChoiceCreateNew, ChoiceConnectExisting, ChoiceCancel,
	})
	if err != nil {
		return err
	}

	switch mode {
	case ChoiceCreateNew:
		return f.createAndConnect(ctx)
	case ChoiceConnectExisting:
		url, err := f.prompter.Input("🌐 Repository URL", "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(url) == "" {
			f.warn("⚠️  No URL given, nothing to connect")
			return nil
		}
		return f.reconcileRemote(strings.TrimSpace(url))
	default:
		return nil
	}
}

func (f *Flow) createAndConnect(ctx context.Context) error {
	name, err := f.prompter.Input("📂 New repository name", filepath.Base(f.git.Dir()))
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.New("repository name cannot be empty")
	}
	private, err := f.prompter.Confirm("🔒 Should the repository be private?", true)
	if err != nil {
		return err
	}

	cloneURL, err := f.hub.CreateRepository(ctx, f.cred.Token, strings.TrimSpace(name), private)
	if err != nil {
		return err
	}
	f.success("🎉 Repository created: %s", cloneURL)

	return f.reconcileRemote(cloneURL)
}

// reconcileRemote points "origin" at url. An existing origin is only
// replaced after explicit confirmation; declining leaves it untouched. When
// the directory is not a repository yet it is initialized first.
func (f *Flow) reconcileRemote(url string) error {
	if !f.git.IsRepository() {
		f.warn("📂 Not a git repository, initializing...")
		if err := f.git.Init(); err != nil {
			return err
		}
	}

	hasOrigin, err := f.git.HasOrigin()
	if err != nil {
		return err
	}
	if hasOrigin {
		remove, err := f.prompter.Confirm("⚠️  Remote 'origin' already exists. Remove it?", false)
		if err != nil {
			return err
		}
		if !remove {
			f.warn("Keeping the existing remote, nothing changed")
			return nil
		}
		if err := f.git.RemoveRemote("origin"); err != nil {
			return err
		}
		f.success("✅ Removed old remote")
	}

	if err := f.git.AddRemote("origin", url); err != nil {
		return err
	}
	f.success("✅ Added remote: %s", url)
	return nil
}

// commitChanges runs the COMMITTING step: no-op on a clean tree, otherwise
// stage everything and commit.
func (f *Flow) commitChanges() error {
	dirty, err := f.git.HasChanges()
	if err != nil {
		return err
	}
	if !dirty {
		f.warn("Working tree is clean, nothing to commit")
		return nil
	}

	if err := f.git.AddAll(); err != nil {
		return err
	}

	message, err := f.prompter.Input("📝 Commit message", f.opts.CommitMessage)
	if err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		message = f.opts.CommitMessage
	}

	if err := f.git.Commit(message); err != nil {
		return err
	}
	f.success("✅ Committed: %s", message)
	return nil
}

// pushBranch runs the PUSHING step: normalize the branch name, then push
// with upstream tracking. A failed push surfaces git's stderr verbatim.
func (f *Flow) pushBranch() error {
	if err := f.git.RenameBranch(f.opts.DefaultBranch); err != nil {
		return err
	}
	if err := f.git.Push("origin", f.opts.DefaultBranch); err != nil {
		return err
	}
	f.success("🚀 Pushed to origin/%s", f.opts.DefaultBranch)
	return nil
}

func (f *Flow) printStatus() error {
	out := f.opts.OutWriter

	fmt.Fprintf(out, "Identity: %s <%s>\n", f.cred.Username, f.cred.Email)
	fmt.Fprintf(out, "Token:    %s\n", maskToken(f.cred.Token))
	if path, scope, found := f.creds.ActivePath(); found {
		fmt.Fprintf(out, "Saved at: %s (%s)\n", path, scope)
	} else {
		fmt.Fprintln(out, "Saved at: <not saved>")
	}

	actions, err := Inspect(f.git)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		fmt.Fprintln(out, "Pending:  nothing to do")
		return nil
	}
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = action.String()
	}
	fmt.Fprintf(out, "Pending:  %s\n", strings.Join(names, ", "))
	return nil
}

// switchAccount overwrites the credential wholesale with a freshly validated
// one.
func (f *Flow) switchAccount(ctx context.Context) error {
	if err := f.promptAndValidate(ctx, credstore.Credential{}); err != nil {
		return err
	}
	return f.git.SetGlobalIdentity(f.cred.Username, f.cred.Email)
}

func (f *Flow) resetCredentials() error {
	confirmed, err := f.prompter.Confirm("Delete saved credentials?", false)
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	removed, err := f.creds.Reset()
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		f.warn("No saved credentials found")
		return nil
	}
	for _, path := range removed {
		f.success("✅ Removed %s", path)
	}
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return "<none>"
	}
	return "********"
}

func (f *Flow) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(f.opts.OutWriter, format+"\n", args...)
}

func (f *Flow) warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(f.opts.OutWriter, format+"\n", args...)
}

func (f *Flow) fail(format string, args ...any) {
	color.New(color.FgRed).Fprintf(f.opts.ErrWriter, format+"\n", args...)
}
