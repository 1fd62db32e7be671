package models

import (
	"time"
)

// PostMetric is a performance snapshot for a single post. It carries no tenant
// column; its owner is always the tenant of the post it references (1:1).
type PostMetric struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID         int64     `json:"postId" gorm:"not null;uniqueIndex"`
	Likes          int       `json:"likes" gorm:"not null;default:0"`
	Comments       int       `json:"comments" gorm:"not null;default:0"`
	Shares         int       `json:"shares" gorm:"not null;default:0"`
	Impressions    int       `json:"impressions" gorm:"not null;default:0"`
	Reach          int       `json:"reach" gorm:"not null;default:0"`
	Clicks         int       `json:"clicks" gorm:"not null;default:0"`
	EngagementRate float64   `json:"engagementRate" gorm:"not null;default:0"`
	RecordedAt     time.Time `json:"recordedAt" gorm:"autoCreateTime;index"`
}

func (PostMetric) TableName() string {
	return "post_metrics"
}

// EngagementCount is the raw engagement total (likes + comments + shares).
func (m *PostMetric) EngagementCount() int {
	return m.Likes + m.Comments + m.Shares
}
