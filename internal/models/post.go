package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post lifecycle states. A post moves draft -> scheduled -> published, or
// draft -> scheduled -> failed when a publish attempt is rejected.
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// Post content types
const (
	PostTypeText     = "text"
	PostTypeImage    = "image"
	PostTypeVideo    = "video"
	PostTypeCarousel = "carousel"
	PostTypeStory    = "story"
)

// Post is a piece of content authored for a social account. Ownership is
// direct; AccountID additionally ties the post into the tenant's account
// subgraph and is verified against the same tenant on create and update.
type Post struct {
	ID             int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID       string         `json:"tenantId" gorm:"type:varchar(64);not null;index"`
	AccountID      int64          `json:"accountId" gorm:"not null;index"`
	Content        string         `json:"content" gorm:"type:text;not null"`
	MediaURLs      datatypes.JSON `json:"mediaUrls,omitempty" gorm:"type:jsonb"`
	PostType       string         `json:"postType" gorm:"type:varchar(20);not null"`
	Status         string         `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	ScheduledAt    *time.Time     `json:"scheduledAt,omitempty"`
	PublishedAt    *time.Time     `json:"publishedAt,omitempty"`
	PlatformPostID *string        `json:"platformPostId,omitempty" gorm:"type:varchar(100)"`
	Hashtags       *string        `json:"hashtags,omitempty" gorm:"type:text"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

// ValidPostStatus reports whether s is a known post lifecycle state.
func ValidPostStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusFailed:
		return true
	}
	return false
}

// ValidPostType reports whether t is a known post content type.
func ValidPostType(t string) bool {
	switch t {
	case PostTypeText, PostTypeImage, PostTypeVideo, PostTypeCarousel, PostTypeStory:
		return true
	}
	return false
}
