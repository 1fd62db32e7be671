package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

type HashtagRepository interface {
	List(ctx context.Context, tenantID string, category *string, limit int) ([]models.HashtagGroup, error)
	Get(ctx context.Context, tenantID string, id int64) (*models.HashtagGroup, error)
	Create(ctx context.Context, tenantID string, group *models.HashtagGroup) error
	Update(ctx context.Context, tenantID string, id int64, patch HashtagPatch) (*models.HashtagGroup, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	CountForTenant(ctx context.Context, tenantID string) (int64, error)
}

type HashtagPatch struct {
	Name       *string
	Hashtags   *[]string
	Category   *string
	AvgReach   *int
	UsageCount *int
}

type hashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

func (r *hashtagRepository) List(ctx context.Context, tenantID string, category *string, limit int) ([]models.HashtagGroup, error) {
	var groups []models.HashtagGroup
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	err := query.Order("created_at ASC").Limit(ClampLimit(limit)).Find(&groups).Error
	return groups, err
}

func (r *hashtagRepository) Get(ctx context.Context, tenantID string, id int64) (*models.HashtagGroup, error) {
	var group models.HashtagGroup
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ownership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *hashtagRepository) Create(ctx context.Context, tenantID string, group *models.HashtagGroup) error {
	group.ID = 0
	group.TenantID = tenantID
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *hashtagRepository) Update(ctx context.Context, tenantID string, id int64, patch HashtagPatch) (*models.HashtagGroup, error) {
	var updated *models.HashtagGroup
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.HashtagGroup
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&group).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.Name != nil {
			group.Name = *patch.Name
		}
		if patch.Hashtags != nil {
			raw, err := models.JSONStringList(*patch.Hashtags)
			if err != nil {
				return err
			}
			group.Hashtags = raw
		}
		if patch.Category != nil {
			group.Category = patch.Category
		}
		if patch.AvgReach != nil {
			group.AvgReach = *patch.AvgReach
		}
		if patch.UsageCount != nil {
			group.UsageCount = *patch.UsageCount
		}

		if err := tx.Save(&group).Error; err != nil {
			return err
		}
		updated = &group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *hashtagRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.HashtagGroup{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func (r *hashtagRepository) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.HashtagGroup{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
