// Package services holds business logic that spans models and the
// billing/pdf packages, keeping handlers thin.
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm/internal/billing"
	"github.com/crmkit/go-crm/internal/models"
	"github.com/crmkit/go-crm/internal/pdf"
)

// InvoiceService creates invoices and renders them to PDF.
type InvoiceService struct {
	DB        *gorm.DB
	Generator *pdf.Generator
	OutputDir string
}

func NewInvoiceService(db *gorm.DB, gen *pdf.Generator, outputDir string) *InvoiceService {
	return &InvoiceService{DB: db, Generator: gen, OutputDir: outputDir}
}

// Create validates nothing itself: callers build the item sequence via
// billing.Append so only valid items ever reach this point. The items
// are frozen into the persisted blob; totals are never stored.
func (s *InvoiceService) Create(ctx context.Context, clientName string, items []billing.LineItem, taxPercent decimal.Decimal) (*models.Invoice, error) {
	blob, err := billing.MarshalItems(items)
	if err != nil {
		return nil, err
	}
	inv := &models.Invoice{
		ClientName: clientName,
		Items:      blob,
		TaxPercent: taxPercent,
	}
	if err := s.DB.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// Document assembles the render input for an invoice. A malformed item
// blob is an error here: rendering a silently empty invoice would hand
// the client a wrong document.
func (s *InvoiceService) Document(inv *models.Invoice) (pdf.Document, error) {
	items, err := inv.LineItems()
	if err != nil {
		return pdf.Document{}, err
	}
	lines := make([]pdf.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pdf.Line{
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.Price,
			LineTotal: it.LineTotal(),
		})
	}
	return pdf.Document{
		Number:     strconv.FormatUint(uint64(inv.ID), 10),
		ClientName: inv.ClientName,
		IssueDate:  inv.CreatedAt,
		Items:      lines,
		TaxPercent: inv.TaxPercent,
		Summary:    billing.ComputeSummary(items, inv.TaxPercent),
	}, nil
}

// Render returns the invoice PDF bytes.
func (s *InvoiceService) Render(inv *models.Invoice) ([]byte, error) {
	doc, err := s.Document(inv)
	if err != nil {
		return nil, err
	}
	return s.Generator.Generate(doc)
}

// Export renders the invoice and writes it into the configured output
// directory as invoice_<id>.pdf, atomically. Returns the written path.
func (s *InvoiceService) Export(inv *models.Invoice) (string, error) {
	doc, err := s.Document(inv)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.OutputDir, fmt.Sprintf("invoice_%d.pdf", inv.ID))
	if err := s.Generator.RenderToFile(doc, path); err != nil {
		return "", err
	}
	return path, nil
}
