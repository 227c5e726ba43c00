package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crmkit/go-crm/auth"
	"github.com/crmkit/go-crm/gate"
	crmdb "github.com/crmkit/go-crm/internal/db"
	"github.com/crmkit/go-crm/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := crmdb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role gate.Role) *models.User {
	t.Helper()
	user := models.User{Username: username, Role: role}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

// asUser attaches an authenticated context directly, bypassing the
// cookie round-trip; the end-to-end tests under cmd/server cover the
// full session flow.
func asUser(r *http.Request, userID uint) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}
