package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contact_manager/internal/apperror"
	"contact_manager/internal/domain"
	"contact_manager/internal/utils"
)

func newCachedUserService(t *testing.T, gdb *gorm.DB, mr *miniredis.Miniredis) *UserService {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewUserService(gdb, rdb, testSecret, time.Minute)
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	var uerr *apperror.UnauthorizedError
	require.True(t, errors.As(err, &uerr), "got %v", err)
}

func TestAuthenticateServedFromCache(t *testing.T) {
	gdb := newTestDB(t)
	mr := miniredis.RunT(t)
	svc := newCachedUserService(t, gdb, mr)
	ctx := context.Background()
	user := createTestUser(t, gdb, "farden")
	key := utils.TokenCacheKey(*user.Token)

	found, err := svc.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	assert.Equal(t, "Test farden", found.Name)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	// Written behind the service's back, so only a cache miss would see it
	require.NoError(t, gdb.Model(&domain.User{}).Where("username = ?", "farden").Update("name", "Changed").Error)

	found, err = svc.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	assert.Equal(t, "farden", found.Username)
	assert.Equal(t, "Test farden", found.Name)
	assert.Equal(t, user.Token, found.Token)
}

func TestCachedTokenDroppedOnLogout(t *testing.T) {
	gdb := newTestDB(t)
	mr := miniredis.RunT(t)
	svc := newCachedUserService(t, gdb, mr)
	ctx := context.Background()
	user := createTestUser(t, gdb, "farden")

	current, err := svc.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, current))

	assert.False(t, mr.Exists(utils.TokenCacheKey(*user.Token)))
	_, err = svc.Authenticate(ctx, *user.Token)
	requireUnauthorized(t, err)
}

func TestCachedTokenDroppedOnDelete(t *testing.T) {
	gdb := newTestDB(t)
	mr := miniredis.RunT(t)
	svc := newCachedUserService(t, gdb, mr)
	ctx := context.Background()
	user := createTestUser(t, gdb, "farden")

	current, err := svc.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, current))

	assert.False(t, mr.Exists(utils.TokenCacheKey(*user.Token)))
	_, err = svc.Authenticate(ctx, *user.Token)
	requireUnauthorized(t, err)
}

func TestCachedUserRefreshedOnUpdate(t *testing.T) {
	gdb := newTestDB(t)
	mr := miniredis.RunT(t)
	svc := newCachedUserService(t, gdb, mr)
	ctx := context.Background()
	user := createTestUser(t, gdb, "farden")

	current, err := svc.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	_, err = svc.Update(ctx, current, UpdateUserRequest{Name: "Farden Baru"})
	require.NoError(t, err)

	found, err := svc.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	assert.Equal(t, "Farden Baru", found.Name)
}

func TestCachedTokenDroppedOnLogin(t *testing.T) {
	gdb := newTestDB(t)
	mr := miniredis.RunT(t)
	svc := newCachedUserService(t, gdb, mr)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterUserRequest{Username: "farden", Password: "rahasia", Name: "Farden"})
	require.NoError(t, err)

	first, err := svc.Login(ctx, LoginUserRequest{Username: "farden", Password: "rahasia"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, first.Token)
	require.NoError(t, err)

	second, err := svc.Login(ctx, LoginUserRequest{Username: "farden", Password: "rahasia"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, first.Token)
	requireUnauthorized(t, err)
	_, err = svc.Authenticate(ctx, second.Token)
	assert.NoError(t, err)
}

func TestLogoutSucceedsWhenCacheIsDown(t *testing.T) {
	gdb := newTestDB(t)
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	svc := newCachedUserService(t, gdb, mr)
	ctx := context.Background()
	user := createTestUser(t, gdb, "farden")

	current, err := svc.Authenticate(ctx, *user.Token)
	require.NoError(t, err)
	mr.Close()

	require.NoError(t, svc.Logout(ctx, current))
	var stored domain.User
	require.NoError(t, gdb.First(&stored, "username = ?", "farden").Error)
	assert.Nil(t, stored.Token)
}
