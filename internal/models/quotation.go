package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation is a priced offer snapshot. Created once from a validated
// submission and never edited afterwards.
type Quotation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ClientName     string          `gorm:"size:150;not null" json:"client_name"`
	ClientPhone    string          `gorm:"size:20;not null" json:"client_phone"`
	ProductName    string          `gorm:"size:150;not null" json:"product_name"`
	ProductDetails string          `gorm:"type:text" json:"product_details,omitempty"`
	WebsitePrice   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"website_price"`
}
