package git

import (
	"fmt"

	"github.com/samzong/gitput/internal/gitcmd"
)

// CommandError reports a failed git subcommand. Stderr carries the verbatim
// diagnostic so it can be shown to the user unmodified; ExitCode is the
// child exit status, or -1 when the process could not be spawned.
type CommandError struct {
	Op       string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// wrapError builds a CommandError that prefers git stderr output when present.
func wrapError(op string, result gitcmd.Result, err error) error {
	return &CommandError{Op: op, Stderr: result.StderrString(true), ExitCode: gitcmd.ExitCode(err), Err: err}
}
