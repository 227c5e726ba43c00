// Package pdf renders invoices as paginated A4 table documents.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/crmkit/go-crm/internal/billing"
)

// ErrRender marks a failed render or a failed write of the output
// artifact. Callers retry by re-requesting the document.
var ErrRender = errors.New("render failed")

// Line is one body row of the rendered table.
type Line struct {
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Document is everything the renderer needs; it carries no database
// state so the same input always renders the same bytes.
type Document struct {
	Number     string
	ClientName string
	IssueDate  time.Time
	Items      []Line
	TaxPercent decimal.Decimal
	Summary    billing.Summary
}

// Generator renders invoice documents. Currency is the symbol printed
// in front of every amount.
type Generator struct {
	Currency string
}

func NewGenerator(currency string) *Generator {
	return &Generator{Currency: currency}
}

func (g *Generator) money(d decimal.Decimal) string {
	return g.Currency + d.StringFixed(2)
}

// Generate renders the document to PDF bytes. Output is deterministic:
// the embedded creation date is taken from the document itself.
func (g *Generator) Generate(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+doc.Number, false)
	// Both embedded dates must come from the document: gofpdf fills
	// /ModDate with the wall clock when it is left unset.
	pdf.SetCreationDate(doc.IssueDate.UTC())
	pdf.SetModificationDate(doc.IssueDate.UTC())
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, "Date: "+doc.IssueDate.Format("2006-01-02"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Client: "+doc.ClientName, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	const (
		colIdx   = 12.0
		colName  = 78.0
		colQty   = 20.0
		colPrice = 35.0
		colTotal = 35.0
	)

	header := func() {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(25, 118, 210)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(colIdx, 8, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colName, 8, "Item", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colQty, 8, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colPrice, 8, "Price", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colTotal, 8, "Total", "1", 1, "R", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	pdf.SetFont("Arial", "", 10)
	for i, it := range doc.Items {
		pdf.CellFormat(colIdx, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colName, 7, truncate(it.Name, 48), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 7, fmt.Sprintf("%d", it.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 7, g.money(it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 7, g.money(it.LineTotal), "1", 1, "R", false, 0, "")
	}

	// Summary rows, shaded to stand apart from the item body.
	label := colIdx + colName + colQty
	pdf.SetFillColor(227, 242, 253)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(label, 7, "", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colPrice, 7, "Subtotal", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 7, g.money(doc.Summary.Subtotal), "1", 1, "R", true, 0, "")

	pdf.CellFormat(label, 7, "", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colPrice, 7, fmt.Sprintf("Tax (%s%%)", doc.TaxPercent.String()), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 7, g.money(doc.Summary.TaxAmount), "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(label, 8, "", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colPrice, 8, "Grand Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 8, g.money(doc.Summary.Total), "1", 1, "R", true, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, "Thank you for doing business with us!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// RenderToFile renders the document and writes it atomically: the
// bytes go to a temp file in the target directory which is then
// renamed into place, so a concurrent reader never sees a partial
// file. Concurrent renders of the same path are last-writer-wins.
func (g *Generator) RenderToFile(doc Document, path string) error {
	data, err := g.Generate(doc)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	tmp, err := os.CreateTemp(dir, ".invoice-*.pdf")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
