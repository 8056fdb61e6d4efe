package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"contact_manager/internal/config"
	"contact_manager/internal/db"
	"contact_manager/internal/domain"
	"contact_manager/internal/utils"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func newTestUserService(gdb *gorm.DB) *UserService {
	return NewUserService(gdb, nil, testSecret, time.Minute)
}

func createTestUser(t *testing.T, gdb *gorm.DB, username string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	token, err := utils.GenerateToken(testSecret)
	require.NoError(t, err)
	user := &domain.User{Username: username, Password: string(hash), Name: "Test " + username, Token: &token}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func createTestContact(t *testing.T, gdb *gorm.DB, owner *domain.User) *domain.Contact {
	t.Helper()
	contact := &domain.Contact{
		Username:  owner.Username,
		FirstName: "test",
		LastName:  "test",
		Email:     "test@gmail.com",
		Phone:     "0895123123",
	}
	require.NoError(t, gdb.Create(contact).Error)
	return contact
}

func createManyTestContacts(t *testing.T, gdb *gorm.DB, owner *domain.User) {
	t.Helper()
	for i := 0; i < 15; i++ {
		require.NoError(t, gdb.Create(&domain.Contact{
			Username:  owner.Username,
			FirstName: fmt.Sprintf("test %d", i),
			LastName:  fmt.Sprintf("test %d", i),
			Email:     fmt.Sprintf("test%d@gmail.com", i),
			Phone:     fmt.Sprintf("0895123123%d", i),
		}).Error)
	}
}

func createTestAddress(t *testing.T, gdb *gorm.DB, contact *domain.Contact) *domain.Address {
	t.Helper()
	address := &domain.Address{
		ContactID:  contact.ID,
		Street:     "jalan test",
		City:       "kota test",
		Province:   "provinsi test",
		Country:    "negara test",
		PostalCode: "234234",
	}
	require.NoError(t, gdb.Create(address).Error)
	return address
}

func idString(id uint) string {
	return fmt.Sprint(id)
}
