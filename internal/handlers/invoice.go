package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm/httpx"
	"github.com/crmkit/go-crm/internal/billing"
	"github.com/crmkit/go-crm/internal/models"
	"github.com/crmkit/go-crm/internal/services"
	"github.com/crmkit/go-crm/validation"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// invoiceView is the listing shape: the derived summary rides along,
// a malformed item blob is flagged instead of aborting the listing.
type invoiceView struct {
	models.Invoice
	Summary   billing.Summary `json:"summary"`
	Malformed bool            `json:"malformed,omitempty"`
}

func toView(inv models.Invoice) invoiceView {
	view := invoiceView{Invoice: inv}
	items, err := inv.LineItems()
	if err != nil {
		view.Malformed = true
		items = nil
	}
	view.Summary = billing.ComputeSummary(items, inv.TaxPercent)
	return view
}

// List: GET /invoices — newest first, derived summaries included.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invoices []models.Invoice
	if err := h.DB.Order("id desc").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	views := make([]invoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, toView(inv))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": views, "total": len(views)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName string `json:"client_name"`
		TaxPercent string `json:"tax_percent"`
		Items      []struct {
			Name  string          `json:"name"`
			Qty   int             `json:"qty"`
			Price decimal.Decimal `json:"price"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := validation.Violations{}
	validation.Required("client_name", req.ClientName, v)

	taxPercent := decimal.Zero
	if req.TaxPercent != "" {
		var err error
		taxPercent, err = decimal.NewFromString(req.TaxPercent)
		if err != nil {
			v["tax_percent"] = "invalid_number"
		} else {
			validation.DecimalRange("tax_percent", taxPercent, decimal.Zero, decimal.NewFromInt(100), v)
		}
	}

	var items []billing.LineItem
	for i, it := range req.Items {
		var err error
		items, err = billing.Append(items, it.Name, it.Qty, it.Price)
		if err != nil {
			v[fmt.Sprintf("items[%d]", i)] = err.Error()
		}
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	inv, err := h.Svc.Create(r.Context(), req.ClientName, items, taxPercent)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, toView(*inv))
}

// View: GET /invoices/{id}
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, toView(*inv))
}

// PDF: GET /invoices/{id}/pdf — streams the document and also exports
// it to the configured output directory. Export failure is logged but
// does not block the download.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.load(w, r)
	if !ok {
		return
	}

	data, err := h.Svc.Render(inv)
	if err != nil {
		if errors.Is(err, billing.ErrMalformedItems) {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "malformed_invoice_items", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	if _, err := h.Svc.Export(inv); err != nil {
		log.Printf("invoice %d: export failed: %v", inv.ID, err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("invoice_%d.pdf", inv.ID)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *InvoiceHandler) load(w http.ResponseWriter, r *http.Request) (*models.Invoice, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, false
	}
	var inv models.Invoice
	if err := h.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return nil, false
	}
	return &inv, true
}
