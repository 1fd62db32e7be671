package models

import (
	"time"
)

// Account status values
const (
	AccountStatusConnected    = "connected"
	AccountStatusDisconnected = "disconnected"
	AccountStatusExpired      = "expired"
)

// SocialAccount is a connected social-platform account. Ownership is direct:
// every account carries the tenant that connected it.
type SocialAccount struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID       string    `json:"tenantId" gorm:"type:varchar(64);not null;index"`
	Platform       string    `json:"platform" gorm:"type:varchar(50);not null"`
	AccountName    string    `json:"accountName" gorm:"type:varchar(100);not null"`
	PlatformUserID *string   `json:"platformUserId,omitempty" gorm:"type:varchar(100)"`
	AvatarURL      *string   `json:"avatarUrl,omitempty" gorm:"type:text"`
	FollowersCount int       `json:"followersCount" gorm:"not null;default:0"`
	FollowingCount int       `json:"followingCount" gorm:"not null;default:0"`
	Status         string    `json:"status" gorm:"type:varchar(20);not null;default:'connected'"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}

// ValidAccountStatus reports whether s is a known account status.
func ValidAccountStatus(s string) bool {
	switch s {
	case AccountStatusConnected, AccountStatusDisconnected, AccountStatusExpired:
		return true
	}
	return false
}
