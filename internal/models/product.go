package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. WebsitePrice is a single reference
// price used on quotations; it takes no part in invoice arithmetic.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string          `gorm:"size:150;not null" json:"name"`
	Details      string          `gorm:"type:text" json:"details,omitempty"`
	WebsitePrice decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"website_price"`
}
