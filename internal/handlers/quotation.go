package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm/httpx"
	"github.com/crmkit/go-crm/internal/models"
	"github.com/crmkit/go-crm/internal/share"
	"github.com/crmkit/go-crm/validation"
)

type QuotationHandler struct {
	DB     *gorm.DB
	Linker *share.Linker
}

func NewQuotationHandler(db *gorm.DB, linker *share.Linker) *QuotationHandler {
	return &QuotationHandler{DB: db, Linker: linker}
}

// List: GET /quotations — newest first.
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	var quotations []models.Quotation
	if err := h.DB.Order("id desc").Find(&quotations).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotations", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": quotations, "total": len(quotations)})
}

// Create: POST /quotations
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName     string          `json:"client_name"`
		ClientPhone    string          `json:"client_phone"`
		ProductName    string          `json:"product_name"`
		ProductDetails string          `json:"product_details"`
		WebsitePrice   decimal.Decimal `json:"website_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := validation.Violations{}
	validation.Required("client_name", req.ClientName, v)
	validation.Required("client_phone", req.ClientPhone, v)
	validation.Required("product_name", req.ProductName, v)
	validation.NonNegativeDecimal("website_price", req.WebsitePrice, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	q := models.Quotation{
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ProductName:    req.ProductName,
		ProductDetails: req.ProductDetails,
		WebsitePrice:   req.WebsitePrice,
	}
	if err := h.DB.Create(&q).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quotation", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

// Share: GET /quotations/{id}/share — redirects to the WhatsApp deep
// link so the browser opens the chat directly.
func (h *QuotationHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var q models.Quotation
	if err := h.DB.First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quotation", nil)
		return
	}

	link := h.Linker.QuotationLink(share.Quotation{
		ClientName:     q.ClientName,
		ClientPhone:    q.ClientPhone,
		ProductName:    q.ProductName,
		ProductDetails: q.ProductDetails,
		Price:          q.WebsitePrice,
	})
	http.Redirect(w, r, link, http.StatusSeeOther)
}
