package models

import (
	"time"
)

// AI idea kinds
const (
	IdeaTypePost    = "post"
	IdeaTypeHook    = "hook"
	IdeaTypeCaption = "caption"
	IdeaTypeThread  = "thread"
	IdeaTypeStory   = "story"
)

// AIContentIdea is a generated content suggestion saved for later use.
// Ownership is direct.
type AIContentIdea struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID  string    `json:"tenantId" gorm:"type:varchar(64);not null;index"`
	Platform  *string   `json:"platform,omitempty" gorm:"type:varchar(50)"`
	IdeaType  string    `json:"ideaType" gorm:"type:varchar(20);not null"`
	Title     string    `json:"title" gorm:"type:varchar(200);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Tone      *string   `json:"tone,omitempty" gorm:"type:varchar(50)"`
	ModelUsed *string   `json:"modelUsed,omitempty" gorm:"type:varchar(100)"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (AIContentIdea) TableName() string {
	return "ai_content_ideas"
}

// ValidIdeaType reports whether t is a known idea kind.
func ValidIdeaType(t string) bool {
	switch t {
	case IdeaTypePost, IdeaTypeHook, IdeaTypeCaption, IdeaTypeThread, IdeaTypeStory:
		return true
	}
	return false
}
