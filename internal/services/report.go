package services

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm/internal/billing"
	"github.com/crmkit/go-crm/internal/models"
)

// ReportService answers the dashboard and reporting queries. Monthly
// bucketing happens in Go rather than SQL so sqlite and postgres
// behave identically.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// Totals are the dashboard headline counters.
type Totals struct {
	Clients    int64 `json:"clients"`
	FollowUps  int64 `json:"followups"`
	Products   int64 `json:"products"`
	Quotations int64 `json:"quotations"`
	Invoices   int64 `json:"invoices"`
}

// MonthBucket is one month of activity, keyed "2006-01".
type MonthBucket struct {
	Month     string `json:"month"`
	FollowUps int64  `json:"followups"`
	Invoices  int64  `json:"invoices"`
}

// SalesBucket is one month of invoiced sales.
type SalesBucket struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// FollowUpStats counts follow-ups by status.
type FollowUpStats struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

func (s *ReportService) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	db := s.DB.WithContext(ctx)
	for _, c := range []struct {
		model any
		dst   *int64
	}{
		{&models.Client{}, &t.Clients},
		{&models.FollowUp{}, &t.FollowUps},
		{&models.Product{}, &t.Products},
		{&models.Quotation{}, &t.Quotations},
		{&models.Invoice{}, &t.Invoices},
	} {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return Totals{}, err
		}
	}
	return t, nil
}

// monthKeys returns the last n month keys ending at now, oldest first.
func monthKeys(now time.Time, n int) []string {
	keys := make([]string, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		keys = append(keys, first.AddDate(0, i, 0).Format("2006-01"))
	}
	return keys
}

func windowStart(now time.Time, months int) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
}

// MonthlyActivity counts follow-ups and invoices per month over the
// last 12 months. Every month appears, zero counts included, so charts
// never skip a gap.
func (s *ReportService) MonthlyActivity(ctx context.Context, now time.Time) ([]MonthBucket, error) {
	const months = 12
	start := windowStart(now, months)
	db := s.DB.WithContext(ctx)

	var followUps []models.FollowUp
	if err := db.Select("created_at").Where("created_at >= ?", start).Find(&followUps).Error; err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	if err := db.Select("created_at").Where("created_at >= ?", start).Find(&invoices).Error; err != nil {
		return nil, err
	}

	fu := make(map[string]int64)
	for _, f := range followUps {
		fu[f.CreatedAt.UTC().Format("2006-01")]++
	}
	in := make(map[string]int64)
	for _, i := range invoices {
		in[i.CreatedAt.UTC().Format("2006-01")]++
	}

	buckets := make([]MonthBucket, 0, months)
	for _, key := range monthKeys(now, months) {
		buckets = append(buckets, MonthBucket{Month: key, FollowUps: fu[key], Invoices: in[key]})
	}
	return buckets, nil
}

// Sales returns the all-time invoiced total plus monthly buckets for
// the last 12 months. Each invoice's contribution is recomputed from
// its item blob; a malformed blob contributes zero and is logged, so a
// single bad row never takes the report down.
func (s *ReportService) Sales(ctx context.Context, now time.Time) (decimal.Decimal, []SalesBucket, error) {
	var invoices []models.Invoice
	if err := s.DB.WithContext(ctx).Find(&invoices).Error; err != nil {
		return decimal.Zero, nil, err
	}

	const months = 12
	start := windowStart(now, months)
	total := decimal.Zero
	monthly := make(map[string]decimal.Decimal)

	for i := range invoices {
		inv := &invoices[i]
		items, err := inv.LineItems()
		if err != nil {
			log.Printf("report: invoice %d has malformed items, counted as zero: %v", inv.ID, err)
			continue
		}
		sum := billing.ComputeSummary(items, inv.TaxPercent)
		total = total.Add(sum.Total)
		if !inv.CreatedAt.Before(start) {
			key := inv.CreatedAt.UTC().Format("2006-01")
			monthly[key] = monthly[key].Add(sum.Total)
		}
	}

	buckets := make([]SalesBucket, 0, months)
	for _, key := range monthKeys(now, months) {
		buckets = append(buckets, SalesBucket{Month: key, Total: monthly[key].Round(2)})
	}
	return total.Round(2), buckets, nil
}

func (s *ReportService) FollowUpStats(ctx context.Context) (FollowUpStats, error) {
	var stats FollowUpStats
	db := s.DB.WithContext(ctx).Model(&models.FollowUp{})
	if err := db.Where("status = ?", models.FollowUpStatusPending).Count(&stats.Pending).Error; err != nil {
		return FollowUpStats{}, err
	}
	db = s.DB.WithContext(ctx).Model(&models.FollowUp{})
	if err := db.Where("status = ?", models.FollowUpStatusCompleted).Count(&stats.Completed).Error; err != nil {
		return FollowUpStats{}, err
	}
	return stats, nil
}

// RecentFollowUps returns the latest follow-ups for the dashboard.
func (s *ReportService) RecentFollowUps(ctx context.Context, limit int) ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	err := s.DB.WithContext(ctx).Order("scheduled_at desc").Limit(limit).Find(&followUps).Error
	return followUps, err
}
