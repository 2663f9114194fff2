package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aaxonlabs/agentforge/internal/dbprobe"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

var (
	dbcheckType     string
	dbcheckPath     string
	dbcheckHost     string
	dbcheckPort     string
	dbcheckUser     string
	dbcheckPassword string
	dbcheckDatabase string
	dbcheckSetup    bool
)

var dbcheckCmd = &cobra.Command{
	Use:   "dbcheck",
	Short: "Test a database connection used by generated agents",
	Long: `Verify that a database configuration is reachable before wiring it
into a generated agent. Supports sqlite, mysql and postgresql.

With --setup, also creates the workflow_data table generated agents
write their step output to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := models.ParseDatabaseKind(dbcheckType)
		if kind == models.DatabaseNone {
			return fmt.Errorf("unsupported database type %q: use sqlite, mysql or postgresql", dbcheckType)
		}
		cfg := models.DatabaseConfig{
			Kind:     kind,
			Path:     dbcheckPath,
			Host:     dbcheckHost,
			Port:     dbcheckPort,
			User:     dbcheckUser,
			Password: dbcheckPassword,
			Database: dbcheckDatabase,
		}
		if !cfg.Complete() {
			return fmt.Errorf("incomplete %s configuration: see --help for required flags", dbcheckType)
		}

		ctx := context.Background()
		configs := []models.DatabaseConfig{cfg}

		reportResults("Connection test", dbprobe.Probe(ctx, configs))
		if dbcheckSetup {
			reportResults("Table setup", dbprobe.SetupTables(ctx, configs))
		}
		return nil
	},
}

func reportResults(label string, results []dbprobe.Result) {
	for _, r := range results {
		if r.OK {
			color.New(color.FgGreen).Printf("%s: ok (%s)\n", label, r.Config.Kind)
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "%s: failed (%s): %v\n", label, r.Config.Kind, r.Err)
		}
	}
}

func init() {
	dbcheckCmd.Flags().StringVar(&dbcheckType, "type", "sqlite", "Database type: sqlite, mysql or postgresql")
	dbcheckCmd.Flags().StringVar(&dbcheckPath, "path", "", "Database file path (sqlite)")
	dbcheckCmd.Flags().StringVar(&dbcheckHost, "host", "localhost", "Database host (mysql/postgresql)")
	dbcheckCmd.Flags().StringVar(&dbcheckPort, "port", "", "Database port (mysql/postgresql)")
	dbcheckCmd.Flags().StringVar(&dbcheckUser, "user", "", "Database user (mysql/postgresql)")
	dbcheckCmd.Flags().StringVar(&dbcheckPassword, "password", "", "Database password")
	dbcheckCmd.Flags().StringVar(&dbcheckDatabase, "database", "", "Database name (mysql/postgresql)")
	dbcheckCmd.Flags().BoolVar(&dbcheckSetup, "setup", false, "Create the workflow_data table after a successful probe")
}
