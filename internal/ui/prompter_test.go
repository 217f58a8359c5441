package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samzong/gitput/internal/workflow"
)

// pipedPrompter feeds scripted lines through a pipe, which is never a TTY,
// so every prompt takes the plain fallback path.
func pipedPrompter(t *testing.T, input string) *Prompter {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &Prompter{In: r, Out: &bytes.Buffer{}}
}

func TestPipedPromptsShareOneReader(t *testing.T) {
	p := pipedPrompter(t, "alice\na@x.com\ntoken1\ny\n2\n")

	username, err := p.Input("username", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	// Every later prompt must see the rest of the piped input; a reader
	// built per call would have buffered and dropped it.
	email, err := p.Input("email", "")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	token, err := p.Secret("token")
	require.NoError(t, err)
	assert.Equal(t, "token1", token)

	confirmed, err := p.Confirm("proceed?", false)
	require.NoError(t, err)
	assert.True(t, confirmed)

	choice, err := p.Select("menu", []workflow.Choice{workflow.ChoiceStatus, workflow.ChoiceExit})
	require.NoError(t, err)
	assert.Equal(t, workflow.ChoiceExit, choice)
}

func TestPipedInputFallsBackToDefault(t *testing.T) {
	p := pipedPrompter(t, "\n\n")

	value, err := p.Input("commit message", "Initial commit")
	require.NoError(t, err)
	assert.Equal(t, "Initial commit", value)

	confirmed, err := p.Confirm("private?", true)
	require.NoError(t, err)
	assert.True(t, confirmed, "blank answer keeps the default")
}

func TestPipedSelectRejectsOutOfRange(t *testing.T) {
	p := pipedPrompter(t, "7\n")

	_, err := p.Select("menu", []workflow.Choice{workflow.ChoiceStatus, workflow.ChoiceExit})
	assert.Error(t, err)
}

func TestIsUserAbort(t *testing.T) {
	assert.True(t, isUserAbort(huh.ErrUserAborted))
	assert.True(t, isUserAbort(fmt.Errorf("running form: %w", huh.ErrUserAborted)))
	assert.False(t, isUserAbort(errors.New("open /dev/tty: no such device")))
	assert.False(t, isUserAbort(nil))
}
