package models

import "time"

// FollowUpStatus is the lifecycle state of a follow-up.
type FollowUpStatus string

const (
	FollowUpStatusPending   FollowUpStatus = "pending"
	FollowUpStatusCompleted FollowUpStatus = "completed"
)

// FollowUp is a scheduled client callback owned by the user who
// created it.
type FollowUp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientName  string         `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string         `gorm:"size:15;not null" json:"client_phone"`
	ScheduledAt time.Time      `gorm:"not null;index" json:"scheduled_at"`
	Note        string         `gorm:"type:text" json:"note,omitempty"`
	Status      FollowUpStatus `gorm:"size:20;default:'pending'" json:"status"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
}

// IsPending returns true while the follow-up has not been completed.
func (f *FollowUp) IsPending() bool {
	return f.Status == FollowUpStatusPending
}
