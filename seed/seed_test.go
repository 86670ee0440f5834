package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiuxian-wiki/encyclopedia/auth"
	"github.com/xiuxian-wiki/encyclopedia/config"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

func newStores(t *testing.T) (*models.UsersRepository, *models.RecordsRepository) {
	t.Helper()
	db, err := models.Open(models.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return models.NewUsersRepository(db), models.NewRecordsRepository(db)
}

func TestRunIsIdempotent(t *testing.T) {
	// Arrange
	users, records := newStores(t)
	ctx := context.Background()
	admin := config.AdminConfig{Username: "admin", Password: "admin123", Role: "admin"}

	// Act
	first, err := Run(ctx, users, records, admin, zap.NewNop())
	require.NoError(t, err)
	admin.Password = "rotated-pass"
	second, err := Run(ctx, users, records, admin, zap.NewNop())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, len(Samples()), first.Created)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, len(Samples()), second.Skipped)

	roots, err := records.GetAll(ctx, models.SpiritualRoots)
	require.NoError(t, err)
	assert.Len(t, roots, 3)

	user, err := users.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("rotated-pass", user.PasswordHash))
	assert.Equal(t, first.Admin.ID, user.ID)
}

func TestSamplesAreValid(t *testing.T) {
	counts := map[models.Category]int{}
	for _, rec := range Samples() {
		require.NoError(t, models.PrepareRecord(rec), rec.Base().Name)
		values := rec.Values()
		for _, key := range rec.Category().RequiredFields()[1:] {
			assert.NotEmpty(t, values[key], "%s.%s", rec.Base().Name, key)
		}
		counts[rec.Category()]++
	}
	assert.Equal(t, map[models.Category]int{models.SpiritualRoots: 3, models.CultivationRealms: 3, models.Techniques: 2}, counts)
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		password string
		err      error
	}{
		{password: "admin123"},
		{password: "123456"},
		{password: "12345", err: ErrPasswordTooShort},
		{password: "", err: ErrPasswordTooShort},
		{password: "修仙问道长生", err: nil},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.err, ValidatePassword(tc.password), tc.password)
	}
}
