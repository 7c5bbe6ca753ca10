package models

import "time"

const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
)

type Ticket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Subject     string    `gorm:"size:200;not null" json:"subject"`
	Description string    `gorm:"not null" json:"description"`
	Category    string    `gorm:"size:32;not null" json:"category"`
	Priority    string    `gorm:"size:16;not null;default:Low" json:"priority"`
	Status      string    `gorm:"size:16;not null;default:OPEN" json:"status"`
	Attachment  *string   `json:"attachment"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	User        User      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
