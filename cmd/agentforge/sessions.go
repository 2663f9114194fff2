package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aaxonlabs/agentforge/internal/config"
	"github.com/aaxonlabs/agentforge/internal/state"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored wizard sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mustOpenStore()
		if err != nil {
			return err
		}
		defer db.Close()

		summaries, err := db.ListSessions()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("No stored sessions.")
			return nil
		}

		bold := color.New(color.Bold)
		bold.Printf("%-38s %-7s %-16s %s\n", "SESSION", "STAGE", "UPDATED", "GOAL")
		for _, s := range summaries {
			goal := s.Goal
			if len(goal) > 50 {
				goal = goal[:47] + "..."
			}
			fmt.Printf("%-38s %-7d %-16s %s\n", s.SessionID, s.Stage, s.UpdatedAt.Local().Format("2006-01-02 15:04"), goal)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a stored session in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mustOpenStore()
		if err != nil {
			return err
		}
		defer db.Close()

		s, err := db.LoadSession(args[0])
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("session %s not found", args[0])
		}

		bold := color.New(color.Bold)
		bold.Println("Session:", s.ID)
		fmt.Printf("Stage:       %d\n", s.Stage)
		fmt.Printf("Agent name:  %s\n", s.AgentName)
		fmt.Printf("Objective:   %s\n", s.Objective)
		if s.RefinedObjective != "" {
			fmt.Printf("Refined:     %s\n", s.RefinedObjective)
		}
		fmt.Printf("Skill level: %s\n", s.SkillLevel)

		if len(s.Subtasks) > 0 {
			fmt.Println()
			bold.Println("Subtasks:")
			printNumbered(s.Subtasks)
		}
		if len(s.Questions) > 0 {
			fmt.Println()
			bold.Println("Questions:")
			for i, q := range s.Questions {
				fmt.Printf("%d. %s\n", i+1, q)
				if a := s.Answers[i]; a != "" {
					fmt.Printf("   -> %s\n", a)
				}
			}
		}
		if len(s.Files) > 0 {
			fmt.Println()
			bold.Println("Files:")
			for _, f := range s.Files {
				fmt.Printf("- %s (%s, %d bytes)\n", f.Filename, f.MIMEType, f.SizeBytes)
			}
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mustOpenStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteSession(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted session %s\n", args[0])
		return nil
	},
}

var exportOutput string

var sessionsExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a stored session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mustOpenStore()
		if err != nil {
			return err
		}
		defer db.Close()

		s, err := db.LoadSession(args[0])
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("session %s not found", args[0])
		}

		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, append(data, '\n'), 0644); err != nil {
			return err
		}
		fmt.Printf("Exported session %s to %s\n", s.ID, exportOutput)
		return nil
	},
}

var purgeDays int

var sessionsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete sessions not touched within the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := mustOpenStore()
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := db.PurgeOldSessions(time.Duration(purgeDays) * 24 * time.Hour)
		if err != nil {
			return err
		}
		fmt.Printf("Purged %d session(s)\n", count)
		return nil
	},
}

func init() {
	sessionsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write JSON to a file instead of stdout")
	sessionsPurgeCmd.Flags().IntVar(&purgeDays, "days", 30, "Purge sessions older than this many days")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsPurgeCmd)
}

// mustOpenStore opens the session database or fails the command; unlike the
// wizard, the sessions subcommands are useless without it.
func mustOpenStore() (*state.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	path := cfg.Storage.DBPath
	if path == "" {
		path = state.DefaultDBPath()
	}
	db, err := state.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session database: %w", err)
	}
	return db, nil
}
