package handlers

import (
	"net/http"
	"time"

	"github.com/crmkit/go-crm/httpx"
	"github.com/crmkit/go-crm/internal/services"
)

type DashboardHandler struct {
	Svc *services.ReportService
}

func NewDashboardHandler(svc *services.ReportService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Dashboard: GET /dashboard — headline counters, a 12-month activity
// series and the next follow-ups.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totals, err := h.Svc.Totals(ctx)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	activity, err := h.Svc.MonthlyActivity(ctx, time.Now().UTC())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}
	recent, err := h.Svc.RecentFollowUps(ctx, 5)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_dashboard", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"totals":           totals,
		"monthly_activity": activity,
		"recent_followups": recent,
	})
}

// Reports: GET /reports — follow-up status counts plus the sales
// figures derived from the invoice blobs.
func (h *DashboardHandler) Reports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.Svc.FollowUpStats(ctx)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_reports", nil)
		return
	}
	total, monthly, err := h.Svc.Sales(ctx, time.Now().UTC())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_reports", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"followup_stats": stats,
		"total_sales":    total,
		"monthly_sales":  monthly,
	})
}
