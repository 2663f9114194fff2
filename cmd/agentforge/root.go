package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aaxonlabs/agentforge/internal/config"
	"github.com/aaxonlabs/agentforge/internal/state"
	"github.com/aaxonlabs/agentforge/internal/tui"
	"github.com/aaxonlabs/agentforge/internal/wizard"
)

var resumeSessionID string

var rootCmd = &cobra.Command{
	Use:   "agentforge",
	Short: "Interactive wizard that turns a goal into a runnable agent program",
	Long: `Agentforge walks you through a four-stage wizard:

1. Describe your objective
2. Review and edit the generated subtasks
3. Answer clarifying questions and attach files
4. Get a complete, runnable Python agent program plus documentation

Subtask generation, list editing, question generation and objective
refinement are LLM-backed; the final program is rendered deterministically
from your session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&resumeSessionID, "resume", "", "Resume a stored session by ID")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dbcheckCmd)
}

func runWizard() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gen, err := newGateway(cfg)
	if err != nil {
		return err
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	logger, err := wizard.NewDebugLogger(cfg.Debug.LogPath)
	if err != nil {
		logger = wizard.NopLogger()
	}
	defer logger.Close()

	var snapshots state.SnapshotStore
	if store != nil {
		snapshots = store
	}

	ctrl := wizard.New(gen, snapshots, logger)
	if resumeSessionID != "" && store != nil {
		s, err := store.LoadSession(resumeSessionID)
		if err != nil || s == nil {
			return fmt.Errorf("session %s not found", resumeSessionID)
		}
		ctrl.Resume(s)
	}

	program := tea.NewProgram(tui.New(ctrl), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run wizard: %w", err)
	}
	return nil
}

// openStore opens the session database, best-effort. The wizard runs fine
// without persistence.
func openStore(cfg *config.Config) *state.DB {
	path := cfg.Storage.DBPath
	if path == "" {
		path = state.DefaultDBPath()
	}
	db, err := state.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: session persistence unavailable: %v\n", err)
		return nil
	}
	if err := db.Migrate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: session persistence unavailable: %v\n", err)
		db.Close()
		return nil
	}
	return db
}
