package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"foodwaste/internal/storage"
	"foodwaste/internal/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manages the store schema.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Applies every pending migration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		switch cfg.DataBackend {
		case "sqlite":
			err = storage.RunMigrations(cfg.SQLiteDBPath)
		case "postgres":
			err = postgres.RunMigrations(cfg.DatabaseURL)
		default:
			return errNoSchema()
		}
		if err != nil {
			return err
		}
		fmt.Println("Migrations applied.")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rolls back every applied migration. Deletes all entries.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to drop the schema without --yes")
		}
		var err error
		switch cfg.DataBackend {
		case "sqlite":
			err = storage.MigrateDown(cfg.SQLiteDBPath)
		case "postgres":
			err = postgres.MigrateDown(cfg.DatabaseURL)
		default:
			return errNoSchema()
		}
		if err != nil {
			return err
		}
		fmt.Println("Migrations rolled back.")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the current schema version.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			v     uint
			dirty bool
			err   error
		)
		switch cfg.DataBackend {
		case "sqlite":
			v, dirty, err = storage.MigrationVersion(cfg.SQLiteDBPath)
		case "postgres":
			v, dirty, err = postgres.MigrationVersion(cfg.DatabaseURL)
		default:
			return errNoSchema()
		}
		if err != nil {
			return err
		}
		if dirty {
			fmt.Printf("%d (dirty)\n", v)
			return nil
		}
		fmt.Println(v)
		return nil
	},
}

func errNoSchema() error {
	return fmt.Errorf("backend %q has no schema to migrate", cfg.DataBackend)
}

func init() {
	migrateDownCmd.Flags().Bool("yes", false, "confirm dropping every entry")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
