package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiuxian-wiki/encyclopedia/config"
	"github.com/xiuxian-wiki/encyclopedia/models"
	"github.com/xiuxian-wiki/encyclopedia/seed"
)

var fromEnv bool

var setupAdminCmd = &cobra.Command{
	Use:   "setup-admin",
	Short: "Create the admin account or rotate its password",
	Long: `Prompts for username, password and role (enter keeps the default shown).
With --env the DEFAULT_ADMIN_USERNAME, DEFAULT_ADMIN_PASSWORD and
DEFAULT_ADMIN_ROLE variables are used instead.`,
	Args: cobra.NoArgs,
	RunE: runSetupAdmin,
}

func runSetupAdmin(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	admin := cfg.Admin
	if !fromEnv {
		var err error
		admin, err = promptAdmin(cmd.InOrStdin(), out, cfg.Admin)
		if err != nil {
			return err
		}
		if err := seed.ValidatePassword(admin.Password); err != nil {
			return err
		}
	}

	db, closeDB, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB()
	if err := models.Migrate(db); err != nil {
		return err
	}

	user, err := seed.UpsertAdmin(cmd.Context(), models.NewUsersRepository(db), admin)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "admin account ready\n  username: %s\n  role: %s\n", user.Username, user.Role)
	if !fromEnv {
		fmt.Fprintf(out, "\nadd these lines to your .env to reuse the account:\nDEFAULT_ADMIN_USERNAME=%q\nDEFAULT_ADMIN_PASSWORD=%q\nDEFAULT_ADMIN_ROLE=%q\n",
			admin.Username, admin.Password, admin.Role)
	}
	return nil
}

func promptAdmin(in io.Reader, out io.Writer, defaults config.AdminConfig) (config.AdminConfig, error) {
	scanner := bufio.NewScanner(in)
	ask := func(label, fallback string) (string, error) {
		fmt.Fprintf(out, "%s (default: %s): ", label, fallback)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return fallback, nil
		}
		if v := strings.TrimSpace(scanner.Text()); v != "" {
			return v, nil
		}
		return fallback, nil
	}

	var admin config.AdminConfig
	var err error
	if admin.Username, err = ask("admin username", defaults.Username); err != nil {
		return admin, err
	}
	if admin.Password, err = ask("admin password", defaults.Password); err != nil {
		return admin, err
	}
	if admin.Role, err = ask("admin role", defaults.Role); err != nil {
		return admin, err
	}
	return admin, nil
}
