package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contact_manager/internal/config"
	"contact_manager/internal/domain"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	gdb, err := Open(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(gdb))

	for _, model := range []any{&domain.User{}, &domain.Contact{}, &domain.Address{}} {
		assert.True(t, gdb.Migrator().HasTable(model))
	}
	assert.True(t, gdb.Migrator().HasColumn(&domain.Address{}, "postal_code"))
	assert.True(t, gdb.Migrator().HasIndex(&domain.User{}, "idx_users_token"))
}

func TestOpenTranslatesDuplicateKey(t *testing.T) {
	gdb, err := Open(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(gdb))

	require.NoError(t, gdb.Create(&domain.User{Username: "farden", Password: "x", Name: "Farden"}).Error)
	err = gdb.Create(&domain.User{Username: "farden", Password: "y", Name: "Other"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
