package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studymate/backend/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := database.Migrate(cfg.Database.URL); err != nil {
				return err
			}
			return printVersion(cmd, cfg.Database.URL)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := database.MigrateDown(cfg.Database.URL, steps); err != nil {
				return err
			}
			return printVersion(cmd, cfg.Database.URL)
		},
	}
	down.Flags().Int("steps", 1, "Number of migrations to roll back (0 rolls back everything)")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return printVersion(cmd, cfg.Database.URL)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func printVersion(cmd *cobra.Command, url string) error {
	v, dirty, err := database.MigrationVersion(url)
	if err != nil {
		return err
	}
	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", v, state)
	return nil
}
