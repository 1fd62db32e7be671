package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

type AccountRepository interface {
	List(ctx context.Context, tenantID string, filters AccountFilters, limit int) ([]models.SocialAccount, error)
	Get(ctx context.Context, tenantID string, id int64) (*models.SocialAccount, error)
	Create(ctx context.Context, tenantID string, account *models.SocialAccount) error
	Update(ctx context.Context, tenantID string, id int64, patch AccountPatch) (*models.SocialAccount, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	CountForTenant(ctx context.Context, tenantID string) (int64, error)
}

type AccountFilters struct {
	Platform *string
	Status   *string
}

// AccountPatch carries partial-update fields. A nil pointer means the caller
// did not mention the field; it is left untouched.
type AccountPatch struct {
	Platform       *string
	AccountName    *string
	PlatformUserID *string
	AvatarURL      *string
	FollowersCount *int
	FollowingCount *int
	Status         *string
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) List(ctx context.Context, tenantID string, filters AccountFilters, limit int) ([]models.SocialAccount, error) {
	var accounts []models.SocialAccount
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filters.Platform != nil {
		query = query.Where("platform = ?", *filters.Platform)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	err := query.Order("created_at ASC").Limit(ClampLimit(limit)).Find(&accounts).Error
	return accounts, err
}

func (r *accountRepository) Get(ctx context.Context, tenantID string, id int64) (*models.SocialAccount, error) {
	var account models.SocialAccount
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ownership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Create(ctx context.Context, tenantID string, account *models.SocialAccount) error {
	account.ID = 0
	account.TenantID = tenantID
	if account.Status == "" {
		account.Status = models.AccountStatusConnected
	}
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) Update(ctx context.Context, tenantID string, id int64, patch AccountPatch) (*models.SocialAccount, error) {
	var updated *models.SocialAccount
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.SocialAccount
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.Platform != nil {
			account.Platform = *patch.Platform
		}
		if patch.AccountName != nil {
			account.AccountName = *patch.AccountName
		}
		if patch.PlatformUserID != nil {
			account.PlatformUserID = patch.PlatformUserID
		}
		if patch.AvatarURL != nil {
			account.AvatarURL = patch.AvatarURL
		}
		if patch.FollowersCount != nil {
			account.FollowersCount = *patch.FollowersCount
		}
		if patch.FollowingCount != nil {
			account.FollowingCount = *patch.FollowingCount
		}
		if patch.Status != nil {
			account.Status = *patch.Status
		}

		if err := tx.Save(&account).Error; err != nil {
			return err
		}
		updated = &account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the account and everything transitively owned through it:
// its posts, each post's metric, calendar links to those posts, and the
// account's audience snapshots. All of it commits as one transaction.
func (r *accountRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.SocialAccount
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		var postIDs []int64
		if err := tx.Model(&models.Post{}).
			Where("account_id = ? AND tenant_id = ?", id, tenantID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).
				Delete(&models.PostMetric{}).Error; err != nil {
				return err
			}
			// Calendar entries survive; only the linkage is cleared.
			if err := tx.Model(&models.ContentCalendarEntry{}).
				Where("post_id IN ?", postIDs).
				Update("post_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).
				Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("account_id = ?", id).
			Delete(&models.AudienceSnapshot{}).Error; err != nil {
			return err
		}

		return tx.Delete(&account).Error
	})
}

func (r *accountRepository) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SocialAccount{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
