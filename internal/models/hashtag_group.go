package models

import (
	"time"

	"gorm.io/datatypes"
)

// HashtagGroup is a reusable, named set of hashtags. Ownership is direct.
type HashtagGroup struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID   string         `json:"tenantId" gorm:"type:varchar(64);not null;index"`
	Name       string         `json:"name" gorm:"type:varchar(100);not null"`
	Hashtags   datatypes.JSON `json:"hashtags" gorm:"type:jsonb;not null"`
	Category   *string        `json:"category,omitempty" gorm:"type:varchar(50)"`
	AvgReach   int            `json:"avgReach" gorm:"not null;default:0"`
	UsageCount int            `json:"usageCount" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (HashtagGroup) TableName() string {
	return "hashtag_groups"
}
