package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/samzong/gitput/internal/config"
	"github.com/samzong/gitput/internal/credstore"
	"github.com/samzong/gitput/internal/git"
	"github.com/samzong/gitput/internal/gitcmd"
	"github.com/samzong/gitput/internal/github"
	"github.com/samzong/gitput/internal/ui"
	"github.com/samzong/gitput/internal/workflow"
)

var (
	cfgFile   string
	verbose   bool
	configErr error
	rootCtx   = context.Background()

	rootCmd = &cobra.Command{
		Use:   "gitput",
		Short: "gitput - your Git assistant",
		Long: `gitput walks you through getting a directory onto GitHub: initialize or
connect a repository, stage, commit, add a remote, and push, driven by a few
terminal prompts. Credentials are cached locally so you are not asked again
on every run.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Run the interactive workflow (same as running gitput with no arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			return runWorkflow(cmd.Context())
		},
		SilenceUsage: true,
	}
)

// SetContext installs the signal-aware context commands run under.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

func init() {
	// Assigned here rather than in the var block to avoid an
	// initialization cycle (rootCmd -> runWorkflow -> outWriter -> rootCmd).
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return fmt.Errorf("configuration error: %w", configErr)
		}
		return runWorkflow(cmd.Context())
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $HOME/.gitput.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false,
		"Show the git commands being run")

	rootCmd.AddCommand(startCmd)
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

// runWorkflow assembles the session from its collaborators and runs it. A
// missing git binary is the only error that prevents the session from
// starting.
func runWorkflow(ctx context.Context) error {
	if err := gitcmd.CheckInstalled(); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}
	store, err := credstore.DefaultStore(workDir)
	if err != nil {
		return err
	}

	cfg := config.GetConfig()
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	var hub workflow.HubClient
	if cfg.APIBase != "" {
		hub = github.NewClientWithBaseURL(cfg.APIBase, nil, timeout)
	} else {
		hub = github.NewClient(timeout)
	}

	flow := workflow.NewFlow(
		git.NewClient(workDir, verbose),
		ui.SpinningHub{Hub: hub},
		store,
		ui.NewPrompter(),
		workflow.Options{
			DefaultBranch:   cfg.DefaultBranch,
			CommitMessage:   cfg.CommitMessage,
			MaxAuthAttempts: cfg.MaxAuthAttempts,
			OutWriter:       outWriter(),
			ErrWriter:       errWriter(),
		},
	)
	return flow.Run(ctx)
}
