package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crmkit/go-crm/internal/models"
)

func TestProductCreate(t *testing.T) {
	db := setupTestDB(t)
	h := NewProductHandler(db)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"name":"Water Heater","details":"25L","website_price":"4999.00"}`, http.StatusCreated},
		{"zero price allowed", `{"name":"Brochure","website_price":0}`, http.StatusCreated},
		{"missing name", `{"name":"  ","website_price":10}`, http.StatusBadRequest},
		{"negative price", `{"name":"Widget","website_price":-5}`, http.StatusBadRequest},
		{"invalid json", `{broken`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Create(w, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tt.body)))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d body=%s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"W","website_price":-1}`)))
	var resp struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Details["website_price"] != "must_not_be_negative" {
		t.Errorf("violation = %q, want must_not_be_negative", resp.Details["website_price"])
	}
}

func TestProductList(t *testing.T) {
	db := setupTestDB(t)
	h := NewProductHandler(db)

	db.Create(&models.Product{Name: "Beta"})
	db.Create(&models.Product{Name: "Alpha"})

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 || body.Items[0].Name != "Alpha" {
		t.Errorf("listing = %+v, want 2 products ordered by name", body)
	}
}
