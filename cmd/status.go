package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samzong/gitput/internal/credstore"
	"github.com/samzong/gitput/internal/git"
	"github.com/samzong/gitput/internal/gitcmd"
	"github.com/samzong/gitput/internal/workflow"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved identity and pending repository actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		store, err := credstore.DefaultStore(workDir)
		if err != nil {
			return err
		}
		return printStatus(store, workDir)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printStatus(store *credstore.Store, workDir string) error {
	out := outWriter()

	cred, scope, found, err := store.Load()
	if err != nil {
		// A corrupt file is surfaced here instead of being treated as
		// absent: status exists to tell the truth about what is saved.
		return err
	}
	if !found {
		fmt.Fprintln(out, "No saved credentials. Run gitput to sign in.")
	} else {
		fmt.Fprintf(out, "Identity: %s <%s>\n", cred.Username, cred.Email)
		fmt.Fprintln(out, "Token:    ********")
		fmt.Fprintf(out, "Saved at: %s (%s)\n", store.Path(scope), scope)
	}

	if err := gitcmd.CheckInstalled(); err != nil {
		return err
	}
	actions, err := workflow.Inspect(git.NewClient(workDir, false))
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
