package billing

import "github.com/shopspring/decimal"

// Summary is the derived financial summary of a document. It is never
// stored; every read recomputes it from the items and the tax percent
// so no persisted figure can drift.
type Summary struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeSummary derives subtotal, tax amount and grand total from the
// item sequence. Intermediate sums keep full precision; rounding to
// 2 decimal places (half up) happens once at the end, never per item.
func ComputeSummary(items []LineItem, taxPercent decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	taxAmount := subtotal.Mul(taxPercent).Div(oneHundred)
	total := subtotal.Add(taxAmount)
	return Summary{
		Subtotal:  subtotal.Round(2),
		TaxAmount: taxAmount.Round(2),
		Total:     total.Round(2),
	}
}
