package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crmkit/go-crm/internal/billing"
)

// Invoice is an immutable billing document. Line items live in a JSON
// text blob; subtotal, tax and total are never stored — every read
// derives them from the blob so no persisted figure can drift.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ClientName string          `gorm:"size:150;not null" json:"client_name"`
	Items      string          `gorm:"type:text" json:"-"`
	TaxPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_percent"`
}

// LineItems decodes the persisted item blob. A corrupt blob returns
// billing.ErrMalformedItems; listings and reports degrade such rows to
// zero items instead of failing.
func (i *Invoice) LineItems() ([]billing.LineItem, error) {
	return billing.UnmarshalItems(i.Items)
}

// Summary recomputes the financial summary from the item blob. A
// malformed blob contributes zero, matching the reporting degradation
// policy.
func (i *Invoice) Summary() billing.Summary {
	items, err := i.LineItems()
	if err != nil {
		items = nil
	}
	return billing.ComputeSummary(items, i.TaxPercent)
}
