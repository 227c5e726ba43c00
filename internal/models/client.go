package models

import "time"

// Client is a customer record.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"size:150;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone,omitempty"`
}
