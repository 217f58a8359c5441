package workflow

import (
	"context"
	"errors"

	"github.com/samzong/gitput/internal/credstore"
)

// fakeGit is an in-memory GitClient that records every probe and mutation.
type fakeGit struct {
	dir           string
	isRepo        bool
	originURL     string
	dirty         bool
	remoteHistory bool

	probes    []string
	inits     int
	addAlls   int
	commits   []string
	renames   []string
	pushes    []string
	identity  [2]string
	commitErr error
}

func (g *fakeGit) Dir() string {
	if g.dir == "" {
		return "/work/demo"
	}
	return g.dir
}

func (g *fakeGit) IsRepository() bool {
	g.probes = append(g.probes, "rev-parse")
	return g.isRepo
}

func (g *fakeGit) Init() error {
	g.inits++
	g.isRepo = true
	return nil
}

func (g *fakeGit) Remotes() (string, error) {
	g.probes = append(g.probes, "remote -v")
	if g.originURL == "" {
		return "", nil
	}
	return "origin\t" + g.originURL + " (fetch)\norigin\t" + g.originURL + " (push)", nil
}

func (g *fakeGit) OriginURL() (string, error) { return g.originURL, nil }

func (g *fakeGit) HasOrigin() (bool, error) { return g.originURL != "", nil }

func (g *fakeGit) AddRemote(name, url string) error {
	if name == "origin" {
		g.originURL = url
	}
	return nil
}

func (g *fakeGit) RemoveRemote(name string) error {
	if name == "origin" {
		g.originURL = ""
	}
	return nil
}

func (g *fakeGit) HasChanges() (bool, error) {
	g.probes = append(g.probes, "status")
	return g.dirty, nil
}

func (g *fakeGit) AddAll() error {
	g.addAlls++
	return nil
}

func (g *fakeGit) Commit(message string) error {
	if g.commitErr != nil {
		return g.commitErr
	}
	g.commits = append(g.commits, message)
	g.dirty = false
	return nil
}

func (g *fakeGit) RenameBranch(branch string) error {
	g.renames = append(g.renames, branch)
	return nil
}

func (g *fakeGit) Push(remote, branch string) error {
	g.pushes = append(g.pushes, remote+"/"+branch)
	g.remoteHistory = true
	return nil
}

func (g *fakeGit) HasRemoteHistory() (bool, error) {
	g.probes = append(g.probes, "log --remotes")
	return g.remoteHistory, nil
}

func (g *fakeGit) SetGlobalIdentity(name, email string) error {
	g.identity = [2]string{name, email}
	return nil
}

// fakeHub scripts the two API calls.
type fakeHub struct {
	login       string
	validateErr error
	cloneURL    string
	createErr   error

	validatedTokens []string
	createdNames    []string
}

func (h *fakeHub) ValidateToken(_ context.Context, token string) (string, error) {
	h.validatedTokens = append(h.validatedTokens, token)
	if h.validateErr != nil {
		return "", h.validateErr
	}
	return h.login, nil
}

func (h *fakeHub) CreateRepository(_ context.Context, token, name string, private bool) (string, error) {
	h.createdNames = append(h.createdNames, name)
	if h.createErr != nil {
		return "", h.createErr
	}
	return h.cloneURL, nil
}

// fakeStore keeps credentials in memory.
type fakeStore struct {
	saved   map[credstore.Scope]credstore.Credential
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[credstore.Scope]credstore.Credential{}}
}

func (s *fakeStore) Load() (credstore.Credential, credstore.Scope, bool, error) {
	if s.loadErr != nil {
		return credstore.Credential{}, credstore.ScopeGlobal, false, s.loadErr
	}
	if cred, ok := s.saved[credstore.ScopeLocal]; ok {
		return cred, credstore.ScopeLocal, true, nil
	}
	if cred, ok := s.saved[credstore.ScopeGlobal]; ok {
		return cred, credstore.ScopeGlobal, true, nil
	}
	return credstore.Credential{}, credstore.ScopeGlobal, false, nil
}

func (s *fakeStore) Save(cred credstore.Credential, scope credstore.Scope) error {
	if !cred.Valid() {
		return errors.New("invalid credential")
	}
	s.saved[scope] = cred
	return nil
}

func (s *fakeStore) Reset() ([]string, error) {
	var removed []string
	for _, scope := range []credstore.Scope{credstore.ScopeLocal, credstore.ScopeGlobal} {
		if _, ok := s.saved[scope]; ok {
			removed = append(removed, scope.String())
			delete(s.saved, scope)
		}
	}
	return removed, nil
}

func (s *fakeStore) ActivePath() (string, credstore.Scope, bool) {
	if _, ok := s.saved[credstore.ScopeLocal]; ok {
		return "local-path", credstore.ScopeLocal, true
	}
	if _, ok := s.saved[credstore.ScopeGlobal]; ok {
		return "global-path", credstore.ScopeGlobal, true
	}
	return "", credstore.ScopeGlobal, false
}

// fakePrompter pops scripted answers; an exhausted select queue answers Exit
// so menu loops always terminate.
type fakePrompter struct {
	inputs   []string
	secrets  []string
	confirms []bool
	selects  []Choice

	inputCount int
}

func (p *fakePrompter) Input(_, defaultValue string) (string, error) {
	p.inputCount++
	if len(p.inputs) == 0 {
		return defaultValue, nil
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *fakePrompter) Secret(string) (string, error) {
	if len(p.secrets) == 0 {
		return "", errors.New("no scripted secret")
	}
	answer := p.secrets[0]
	p.secrets = p.secrets[1:]
	return answer, nil
}

func (p *fakePrompter) Confirm(_ string, defaultYes bool) (bool, error) {
	if len(p.confirms) == 0 {
		return defaultYes, nil
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *fakePrompter) Select(_ string, choices []Choice) (Choice, error) {
	if len(p.selects) == 0 {
		return ChoiceExit, nil
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	for _, c := range choices {
		if c == answer {
			return answer, nil
		}
	}
	return ChoiceExit, errors.New("scripted choice not offered by menu")
}
