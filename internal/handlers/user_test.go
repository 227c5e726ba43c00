package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crmkit/go-crm/gate"
	"github.com/crmkit/go-crm/internal/models"
)

func TestUserCreate(t *testing.T) {
	db := setupTestDB(t)
	h := NewUserHandler(db)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"username":"carol","password":"secret123","role":"Accountant"}`, http.StatusCreated},
		{"unknown role", `{"username":"dave","password":"secret123","role":"Wizard"}`, http.StatusBadRequest},
		{"short password", `{"username":"dave","password":"abc","role":"Sales"}`, http.StatusBadRequest},
		{"missing username", `{"username":"","password":"secret123","role":"Sales"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			h.Create(w, r)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d body=%s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	var user models.User
	if err := db.Where("username = ?", "carol").First(&user).Error; err != nil {
		t.Fatalf("created user missing: %v", err)
	}
	if user.Role != gate.RoleAccountant {
		t.Errorf("role = %s, want Accountant", user.Role)
	}
	if !user.CheckPassword("secret123") {
		t.Error("password not stored as a verifiable hash")
	}
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "carol", gate.RoleSales)
	h := NewUserHandler(db)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"username":"carol","password":"secret123","role":"Sales"}`))
	h.Create(w, r)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestUserListHidesPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "alice", gate.RoleAdmin)
	h := NewUserHandler(db)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"alice"`) {
		t.Error("user missing from listing")
	}
	if strings.Contains(body, "password") || strings.Contains(body, "$2a$") {
		t.Error("password hash leaked into listing")
	}
}
