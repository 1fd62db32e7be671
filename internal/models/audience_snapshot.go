package models

import (
	"time"

	"gorm.io/datatypes"
)

// AudienceSnapshot is a point-in-time audience reading for one account. Like
// PostMetric it carries no tenant column; its owner is the tenant of the
// account it references.
type AudienceSnapshot struct {
	ID             int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID      int64          `json:"accountId" gorm:"not null;index"`
	SnapshotDate   time.Time      `json:"snapshotDate" gorm:"type:date;not null;index"`
	Followers      int            `json:"followers" gorm:"not null;default:0"`
	Following      int            `json:"following" gorm:"not null;default:0"`
	EngagementRate float64        `json:"engagementRate" gorm:"not null;default:0"`
	TopPostType    *string        `json:"topPostType,omitempty" gorm:"type:varchar(20)"`
	AudienceGrowth float64        `json:"audienceGrowth" gorm:"not null;default:0"`
	PeakHours      datatypes.JSON `json:"peakHours,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (AudienceSnapshot) TableName() string {
	return "audience_snapshots"
}
