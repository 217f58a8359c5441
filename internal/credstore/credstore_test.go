package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(
		filepath.Join(t.TempDir(), FileName),
		filepath.Join(t.TempDir(), FileName),
	)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
	}{
		{name: "local scope", scope: ScopeLocal},
		{name: "global scope", scope: ScopeGlobal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			cred := Credential{Username: "alice", Email: "a@x.com", Token: "t1"}

			require.NoError(t, store.Save(cred, tt.scope))

			got, scope, found, err := store.Load()
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.scope, scope)
			assert.Equal(t, cred, got)
		})
	}
}

func TestLoadPrefersLocal(t *testing.T) {
	store := newTestStore(t)
	local := Credential{Username: "local", Email: "l@x.com", Token: "t-local"}
	global := Credential{Username: "global", Email: "g@x.com", Token: "t-global"}

	require.NoError(t, store.Save(global, ScopeGlobal))
	require.NoError(t, store.Save(local, ScopeLocal))

	got, scope, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ScopeLocal, scope)
	assert.Equal(t, local, got)
}

func TestLoadAbsent(t *testing.T) {
	store := newTestStore(t)

	_, _, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadCorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(ScopeLocal), []byte("{not json"), 0o600))

	_, _, found, err := store.Load()
	assert.False(t, found)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, store.Path(ScopeLocal), readErr.Path)
}

func TestSaveRejectsIncompleteCredential(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(Credential{Username: "alice"}, ScopeGlobal)
	assert.Error(t, err)

	_, _, found, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.False(t, found, "nothing may be persisted for an invalid credential")
}

func TestSaveOverwritesWholesale(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(Credential{Username: "old", Email: "o@x.com", Token: "t0"}, ScopeGlobal))
	require.NoError(t, store.Save(Credential{Username: "new", Email: "n@x.com", Token: "t1"}, ScopeGlobal))

	got, _, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "new", got.Username)
	assert.Equal(t, "t1", got.Token)
}

func TestResetRemovesBothScopes(t *testing.T) {
	store := newTestStore(t)
	cred := Credential{Username: "alice", Email: "a@x.com", Token: "t1"}
	require.NoError(t, store.Save(cred, ScopeLocal))
	require.NoError(t, store.Save(cred, ScopeGlobal))

	removed, err := store.Reset()
	require.NoError(t, err)
	// Load precedence order: the local file goes first.
	assert.Equal(t, []string{store.Path(ScopeLocal), store.Path(ScopeGlobal)}, removed)

	_, _, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResetWithNothingSaved(t *testing.T) {
	store := newTestStore(t)

	removed, err := store.Reset()
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCredentialValid(t *testing.T) {
	assert.True(t, Credential{Username: "u", Email: "e", Token: "t"}.Valid())
	assert.False(t, Credential{Username: "u", Email: "e"}.Valid())
	assert.False(t, Credential{}.Valid())
}
