package ui

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"

	"github.com/samzong/gitput/internal/workflow"
)

// Spinner wraps briandowns/spinner with TTY awareness.
type Spinner struct {
	s       *spinner.Spinner
	enabled bool
}

// NewSpinner creates a new spinner that only displays on a TTY.
func NewSpinner(message string) *Spinner {
	enabled := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if !enabled {
		return &Spinner{enabled: false}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	return &Spinner{s: s, enabled: true}
}

// Start begins the spinner animation.
func (sp *Spinner) Start() {
	if sp.enabled && sp.s != nil {
		sp.s.Start()
	}
}

// Stop ends the spinner animation.
func (sp *Spinner) Stop() {
	if sp.enabled && sp.s != nil {
		sp.s.Stop()
	}
}

// SpinningHub decorates a HubClient with a spinner while a network call is
// in flight.
type SpinningHub struct {
	Hub workflow.HubClient
}

func (h SpinningHub) ValidateToken(ctx context.Context, token string) (string, error) {
	sp := NewSpinner("Validating token with GitHub...")
	sp.Start()
	defer sp.Stop()
	return h.Hub.ValidateToken(ctx, token)
}

func (h SpinningHub) CreateRepository(ctx context.Context, token, name string, private bool) (string, error) {
	sp := NewSpinner("Creating repository on GitHub...")
	sp.Start()
	defer sp.Stop()
	return h.Hub.CreateRepository(ctx, token, name, private)
}
