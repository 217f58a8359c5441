package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samzong/gitput/internal/credstore"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		store, err := credstore.DefaultStore(workDir)
		if err != nil {
			return err
		}

		removed, err := store.Reset()
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Fprintln(outWriter(), "No saved credentials found.")
			return nil
		}
		for _, path := range removed {
			fmt.Fprintf(outWriter(), "Removed %s\n", path)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
