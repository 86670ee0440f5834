// Package seed creates the admin account and the sample records.
package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/auth"
	"github.com/xiuxian-wiki/encyclopedia/config"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

// MinPasswordLength applies to passwords chosen through setup-admin.
const MinPasswordLength = 6

var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

type UserStore interface {
	UpsertUser(ctx context.Context, username, passwordHash, role string) (*models.User, error)
}

type RecordStore interface {
	FindByName(ctx context.Context, c models.Category, name string) (models.Record, error)
	Create(ctx context.Context, c models.Category, rec models.Record) error
}

// ValidatePassword checks the strength rule for interactively chosen passwords.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// UpsertAdmin creates the account or rotates its password and role.
func UpsertAdmin(ctx context.Context, users UserStore, admin config.AdminConfig) (*models.User, error) {
	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return nil, err
	}
	user, err := users.UpsertUser(ctx, admin.Username, hash, admin.Role)
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", admin.Username, err)
	}
	return user, nil
}

// Result counts what Run wrote.
type Result struct {
	Admin   *models.User
	Created int
	Skipped int
}

// Run upserts the admin and inserts every sample record whose name is not
// taken yet. Existing records are left untouched.
func Run(ctx context.Context, users UserStore, records RecordStore, admin config.AdminConfig, log *zap.Logger) (*Result, error) {
	user, err := UpsertAdmin(ctx, users, admin)
	if err != nil {
		return nil, err
	}
	log.Info("admin user ready", zap.String("username", user.Username), zap.String("role", user.Role))

	res := &Result{Admin: user}
	for _, rec := range Samples() {
		c := rec.Category()
		name := rec.Base().Name
		_, err := records.FindByName(ctx, c, name)
		switch {
		case err == nil:
			res.Skipped++
			continue
		case !errors.Is(err, models.ErrRecordNotFound):
			return nil, fmt.Errorf("look up %s %q: %w", c, name, err)
		}
		if err := records.Create(ctx, c, rec); err != nil {
			return nil, fmt.Errorf("create %s %q: %w", c, name, err)
		}
		log.Debug("seeded record", zap.String("category", c.String()), zap.String("name", name))
		res.Created++
	}
	return res, nil
}
