package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

type response struct {
	Code int
	Body map[string]any
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		DBPath:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		TokenSecret: testSecret,
		CacheTTL:    time.Minute,
	}
	gdb, err := db.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testApp{t: t, db: gdb, router: NewRouter(gdb, nil, cfg)}
}

func (a *testApp) do(method, path, token string, body any) response {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	res := response{Code: rec.Code}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &res.Body), "body: %s", rec.Body.String())
	return res
}

// createTestUser stores a logged-in user with password "rahasia" and returns its token
func (a *testApp) createTestUser(username string) string {
	a.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(a.t, err)
	token, err := utils.GenerateToken(testSecret)
	require.NoError(a.t, err)
	require.NoError(a.t, a.db.Create(&domain.User{
		Username: username,
		Password: string(hash),
		Name:     "test",
		Token:    &token,
	}).Error)
	return token
}

func (a *testApp) createTestContact(username string) *domain.Contact {
	a.t.Helper()
	contact := &domain.Contact{
		Username:  username,
		FirstName: "test",
		LastName:  "test",
		Email:     "test@gmail.com",
		Phone:     "0895123123",
	}
	require.NoError(a.t, a.db.Create(contact).Error)
	return contact
}

func (a *testApp) createManyTestContacts(username string) {
	a.t.Helper()
	for i := 0; i < 15; i++ {
		require.NoError(a.t, a.db.Create(&domain.Contact{
			Username:  username,
			FirstName: fmt.Sprintf("test %d", i),
			LastName:  fmt.Sprintf("test %d", i),
			Email:     fmt.Sprintf("test%d@gmail.com", i),
			Phone:     fmt.Sprintf("0895123123%d", i),
		}).Error)
	}
}

func (a *testApp) createTestAddress(contact *domain.Contact) *domain.Address {
	a.t.Helper()
	address := &domain.Address{
		ContactID:  contact.ID,
		Street:     "jalan test",
		City:       "kota test",
		Province:   "provinsi test",
		Country:    "negara test",
		PostalCode: "234234",
	}
	require.NoError(a.t, a.db.Create(address).Error)
	return address
}

func data(res response) map[string]any {
	m, _ := res.Body["data"].(map[string]any)
	return m
}

func contactPath(id uint) string {
	return fmt.Sprintf("/api/contacts/%d", id)
}

func addressPath(contactID, addressID uint) string {
	return fmt.Sprintf("/api/contacts/%d/addresses/%d", contactID, addressID)
}

// jsonID converts a decoded JSON number to the id type
func jsonID(v any) uint {
	f, _ := v.(float64)
	return uint(f)
}
