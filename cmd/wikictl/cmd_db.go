package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiuxian-wiki/encyclopedia/models"
	"github.com/xiuxian-wiki/encyclopedia/seed"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or alter the user and category tables",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the admin account and insert the sample records",
	Long: `Creates the DEFAULT_ADMIN_* account (rotating its password when it exists)
and inserts the sample spiritual roots, realms and techniques. Records whose
name already exists in their category are skipped.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()
	if err := models.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrated")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()
	if err := models.Migrate(db); err != nil {
		return err
	}

	res, err := seed.Run(cmd.Context(), models.NewUsersRepository(db), models.NewRecordsRepository(db), cfg.Admin, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin: %s\nrecords created: %d, skipped: %d\n", res.Admin.Username, res.Created, res.Skipped)
	return nil
}
