package models

import (
	"time"
)

// DefaultEntryColor is the calendar color used when the caller does not pick one.
const DefaultEntryColor = "#6366f1"

// ContentCalendarEntry is a planned slot on a tenant's content calendar.
// Ownership is direct. PostID is an informational link to one of the tenant's
// posts; a linkage to a post the caller does not own is rejected on write.
type ContentCalendarEntry struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID    string    `json:"tenantId" gorm:"type:varchar(64);not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	EntryDate   time.Time `json:"entryDate" gorm:"type:date;not null;index"`
	TimeSlot    *string   `json:"timeSlot,omitempty" gorm:"type:varchar(20)"`
	PostID      *int64    `json:"postId,omitempty" gorm:"index"`
	Category    string    `json:"category" gorm:"type:varchar(50);not null"`
	Color       string    `json:"color" gorm:"type:varchar(20);not null;default:'#6366f1'"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (ContentCalendarEntry) TableName() string {
	return "content_calendar_entries"
}
