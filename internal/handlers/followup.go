package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/crmkit/go-crm/auth"
	"github.com/crmkit/go-crm/httpx"
	"github.com/crmkit/go-crm/internal/models"
	"github.com/crmkit/go-crm/validation"
)

type FollowUpHandler struct {
	DB *gorm.DB
}

func NewFollowUpHandler(db *gorm.DB) *FollowUpHandler {
	return &FollowUpHandler{DB: db}
}

// List: GET /followups — pending first, soonest first.
func (h *FollowUpHandler) List(w http.ResponseWriter, r *http.Request) {
	var followUps []models.FollowUp
	q := h.DB.Order("status desc, scheduled_at asc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&followUps).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_followups", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": followUps, "total": len(followUps)})
}

// Create: POST /followups
func (h *FollowUpHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName  string `json:"client_name"`
		ClientPhone string `json:"client_phone"`
		ScheduledAt string `json:"scheduled_at"`
		Note        string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := validation.Violations{}
	validation.Required("client_name", req.ClientName, v)
	validation.Required("client_phone", req.ClientPhone, v)
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		v["scheduled_at"] = "invalid_timestamp"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	followUp := models.FollowUp{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ScheduledAt: scheduledAt,
		Note:        req.Note,
		Status:      models.FollowUpStatusPending,
		UserID:      userID,
	}
	if err := h.DB.Create(&followUp).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_followup", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, followUp)
}

// Complete: POST /followups/{id}/complete — idempotent.
func (h *FollowUpHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}

	var followUp models.FollowUp
	if err := h.DB.First(&followUp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_followup", nil)
		return
	}

	if followUp.IsPending() {
		if err := h.DB.Model(&followUp).Update("status", models.FollowUpStatusCompleted).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_complete_followup", nil)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, followUp)
}
