package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiuxian-wiki/encyclopedia/config"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

var (
	envFile string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wikictl",
	Short: "Administration tool for the cultivation encyclopedia",
	Long: `wikictl manages the encyclopedia database outside the web server:
creating the admin account, migrating tables, loading sample data and
checking that a running server is healthy.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		logger, err = cfg.Logger()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	setupAdminCmd.Flags().BoolVar(&fromEnv, "env", false, "take the account from DEFAULT_ADMIN_* instead of prompting")
	healthcheckCmd.Flags().StringVar(&healthURL, "url", "", "server base URL (defaults to API_BASE_URL)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of rows to print")

	rootCmd.AddCommand(setupAdminCmd, seedCmd, migrateCmd, healthcheckCmd, searchCmd)
}

// openDB connects with the loaded configuration and closes the pool when
// the returned func is called.
func openDB() (*gorm.DB, func(), error) {
	db, err := models.Open(cfg.DatabaseDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = sqlDB.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
