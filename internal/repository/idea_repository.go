package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

type IdeaRepository interface {
	List(ctx context.Context, tenantID string, filters IdeaFilters, limit int) ([]models.AIContentIdea, error)
	ListRecentUnused(ctx context.Context, tenantID string, limit int) ([]models.AIContentIdea, error)
	Get(ctx context.Context, tenantID string, id int64) (*models.AIContentIdea, error)
	Create(ctx context.Context, tenantID string, idea *models.AIContentIdea) error
	CreateBatch(ctx context.Context, tenantID string, ideas []models.AIContentIdea) ([]models.AIContentIdea, error)
	Update(ctx context.Context, tenantID string, id int64, patch IdeaPatch) (*models.AIContentIdea, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	Counts(ctx context.Context, tenantID string) (total, used int64, err error)
}

type IdeaFilters struct {
	Platform *string
	IdeaType *string
	Used     *bool
}

type IdeaPatch struct {
	Platform  *string
	IdeaType  *string
	Title     *string
	Content   *string
	Tone      *string
	ModelUsed *string
	Used      *bool
}

type ideaRepository struct {
	db *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

func (r *ideaRepository) List(ctx context.Context, tenantID string, filters IdeaFilters, limit int) ([]models.AIContentIdea, error) {
	var ideas []models.AIContentIdea
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filters.Platform != nil {
		query = query.Where("platform = ?", *filters.Platform)
	}
	if filters.IdeaType != nil {
		query = query.Where("idea_type = ?", *filters.IdeaType)
	}
	if filters.Used != nil {
		query = query.Where("used = ?", *filters.Used)
	}
	err := query.Order("created_at DESC").Limit(ClampLimit(limit)).Find(&ideas).Error
	return ideas, err
}

func (r *ideaRepository) ListRecentUnused(ctx context.Context, tenantID string, limit int) ([]models.AIContentIdea, error) {
	used := false
	return r.List(ctx, tenantID, IdeaFilters{Used: &used}, limit)
}

func (r *ideaRepository) Get(ctx context.Context, tenantID string, id int64) (*models.AIContentIdea, error) {
	var idea models.AIContentIdea
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&idea).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ownership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

func (r *ideaRepository) Create(ctx context.Context, tenantID string, idea *models.AIContentIdea) error {
	idea.ID = 0
	idea.TenantID = tenantID
	return r.db.WithContext(ctx).Create(idea).Error
}

// CreateBatch persists a set of ideas atomically. Either every idea is
// written or none are; the AI studio relies on this after a provider
// response has been fully parsed.
func (r *ideaRepository) CreateBatch(ctx context.Context, tenantID string, ideas []models.AIContentIdea) ([]models.AIContentIdea, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range ideas {
			ideas[i].ID = 0
			ideas[i].TenantID = tenantID
			if err := tx.Create(&ideas[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) Update(ctx context.Context, tenantID string, id int64, patch IdeaPatch) (*models.AIContentIdea, error) {
	var updated *models.AIContentIdea
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var idea models.AIContentIdea
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&idea).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.Platform != nil {
			idea.Platform = patch.Platform
		}
		if patch.IdeaType != nil {
			idea.IdeaType = *patch.IdeaType
		}
		if patch.Title != nil {
			idea.Title = *patch.Title
		}
		if patch.Content != nil {
			idea.Content = *patch.Content
		}
		if patch.Tone != nil {
			idea.Tone = patch.Tone
		}
		if patch.ModelUsed != nil {
			idea.ModelUsed = patch.ModelUsed
		}
		if patch.Used != nil {
			idea.Used = *patch.Used
		}

		if err := tx.Save(&idea).Error; err != nil {
			return err
		}
		updated = &idea
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ideaRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.AIContentIdea{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func (r *ideaRepository) Counts(ctx context.Context, tenantID string) (int64, int64, error) {
	var total, used int64
	if err := r.db.WithContext(ctx).
		Model(&models.AIContentIdea{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.AIContentIdea{}).
		Where("tenant_id = ? AND used = ?", tenantID, true).
		Count(&used).Error; err != nil {
		return 0, 0, err
	}
	return total, used, nil
}
