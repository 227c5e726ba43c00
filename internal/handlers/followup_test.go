package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/crmkit/go-crm/gate"
	"github.com/crmkit/go-crm/internal/models"
)

func TestFollowUpCreate(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "sales", gate.RoleSales)
	h := NewFollowUpHandler(db)

	scheduled := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	body := `{"client_name":"Acme","client_phone":"9876543210","scheduled_at":"` + scheduled + `","note":"call back"}`

	w := httptest.NewRecorder()
	r := asUser(httptest.NewRequest(http.MethodPost, "/followups", strings.NewReader(body)), user.ID)
	h.Create(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var followUp models.FollowUp
	if err := db.First(&followUp).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if followUp.UserID != user.ID {
		t.Errorf("UserID = %d, want %d (owner is the creator)", followUp.UserID, user.ID)
	}
	if !followUp.IsPending() {
		t.Error("new follow-up should start pending")
	}
}

func TestFollowUpCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewFollowUpHandler(db)

	tests := []struct {
		name string
		body string
	}{
		{"missing client name", `{"client_name":"","client_phone":"1","scheduled_at":"2026-09-01T10:00:00Z"}`},
		{"missing phone", `{"client_name":"Acme","client_phone":"","scheduled_at":"2026-09-01T10:00:00Z"}`},
		{"bad timestamp", `{"client_name":"Acme","client_phone":"1","scheduled_at":"tomorrow"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/followups", strings.NewReader(tt.body))
			h.Create(w, r)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestFollowUpComplete(t *testing.T) {
	db := setupTestDB(t)
	h := NewFollowUpHandler(db)

	followUp := models.FollowUp{ClientName: "Acme", ClientPhone: "1", ScheduledAt: time.Now(), Status: models.FollowUpStatusPending}
	if err := db.Create(&followUp).Error; err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /followups/{id}/complete", h.Complete)

	complete := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/followups/1/complete", nil))
		return w
	}

	if w := complete(); w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var reloaded models.FollowUp
	db.First(&reloaded, followUp.ID)
	if reloaded.Status != models.FollowUpStatusCompleted {
		t.Fatalf("status = %s, want completed", reloaded.Status)
	}

	// Completing again stays 200 and keeps the status.
	if w := complete(); w.Code != http.StatusOK {
		t.Fatalf("repeat status = %d", w.Code)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/followups/999/complete", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", w.Code)
	}
}

func TestFollowUpListFilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	h := NewFollowUpHandler(db)
	now := time.Now()

	db.Create(&models.FollowUp{ClientName: "A", ClientPhone: "1", ScheduledAt: now, Status: models.FollowUpStatusPending})
	db.Create(&models.FollowUp{ClientName: "B", ClientPhone: "1", ScheduledAt: now, Status: models.FollowUpStatusCompleted})

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/followups?status=pending", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Items []models.FollowUp `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || body.Items[0].ClientName != "A" {
		t.Errorf("filtered listing = %+v", body)
	}
}
