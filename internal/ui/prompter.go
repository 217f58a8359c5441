// Package ui implements the terminal side of the workflow: prompts, menus,
// and progress indication.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/samzong/gitput/internal/workflow"
)

// Prompter renders interactive forms with huh on a TTY and falls back to
// plain line-based prompts otherwise (pipes, CI).
type Prompter struct {
	In  *os.File
	Out io.Writer

	reader *bufio.Reader
}

// NewPrompter creates a Prompter over stdin/stderr.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stderr}
}

// bufferedIn returns the one reader shared by every plain prompt. A reader
// per call would swallow whatever piped input it buffered past the first
// line.
func (p *Prompter) bufferedIn() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	return p.reader
}

func (p *Prompter) interactive() bool {
	fd := p.In.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Input asks for a line of text. An empty answer yields the default.
func (p *Prompter) Input(title, defaultValue string) (string, error) {
	if !p.interactive() {
		return p.readLine(title, defaultValue)
	}

	value := defaultValue
	input := huh.NewInput().Title(title).Value(&value)
	if err := input.Run(); err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return defaultValue, nil
	}
	return strings.TrimSpace(value), nil
}

// Secret asks for sensitive input without echoing it.
func (p *Prompter) Secret(title string) (string, error) {
	if !p.interactive() {
		return p.readLine(title, "")
	}

	var value string
	input := huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(&value)
	if err := input.Run(); err != nil {
		if isUserAbort(err) {
			return "", err
		}
		// Some terminals reject the alternate screen; raw-mode password
		// entry still works there.
		return p.readPassword(title)
	}
	return strings.TrimSpace(value), nil
}

// isUserAbort distinguishes the user cancelling a prompt from the renderer
// failing; only the latter warrants the raw-mode fallback.
func isUserAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(title string, defaultYes bool) (bool, error) {
	if !p.interactive() {
		answer, err := p.readLine(fmt.Sprintf("%s [y/n]", title), "")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			return defaultYes, nil
		}
	}

	value := defaultYes
	confirm := huh.NewConfirm().Title(title).Value(&value)
	if err := confirm.Run(); err != nil {
		return false, err
	}
	return value, nil
}

// Select presents the menu and returns the chosen entry. Options carry the
// Choice values themselves; labels are presentation only.
func (p *Prompter) Select(title string, choices []workflow.Choice) (workflow.Choice, error) {
	if len(choices) == 0 {
		return 0, errors.New("no choices to select from")
	}

	if !p.interactive() {
		return p.selectPlain(title, choices)
	}

	options := make([]huh.Option[workflow.Choice], 0, len(choices))
	for _, choice := range choices {
		options = append(options, huh.NewOption(choice.Label(), choice))
	}

	var selected workflow.Choice
	sel := huh.NewSelect[workflow.Choice]().Title(title).Options(options...).Value(&selected)
	if err := sel.Run(); err != nil {
		return 0, err
	}
	return selected, nil
}

func (p *Prompter) selectPlain(title string, choices []workflow.Choice) (workflow.Choice, error) {
	fmt.Fprintln(p.Out, title)
	for i, choice := range choices {
		fmt.Fprintf(p.Out, "  %d) %s\n", i+1, choice.Label())
	}

	answer, err := p.readLine(fmt.Sprintf("Enter 1-%d", len(choices)), "")
	if err != nil {
		return 0, err
	}
	var index int
	if _, err := fmt.Sscanf(answer, "%d", &index); err != nil || index < 1 || index > len(choices) {
		return 0, fmt.Errorf("invalid selection: %q", answer)
	}
	return choices[index-1], nil
}

func (p *Prompter) readLine(title, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.Out, "%s [%s]: ", title, defaultValue)
	} else {
		fmt.Fprintf(p.Out, "%s: ", title)
	}

	line, err := p.bufferedIn().ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

func (p *Prompter) readPassword(title string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", title)
	raw, err := term.ReadPassword(int(p.In.Fd()))
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
