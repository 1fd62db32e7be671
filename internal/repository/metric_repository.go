package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

// MetricRepository scopes post metrics through their parent post: the metric
// table has no tenant column, so every query joins posts and filters on the
// post's tenant.
type MetricRepository interface {
	List(ctx context.Context, tenantID string, postID *int64, limit int) ([]models.PostMetric, error)
	Get(ctx context.Context, tenantID string, id int64) (*models.PostMetric, error)
	Create(ctx context.Context, tenantID string, metric *models.PostMetric) error
	Update(ctx context.Context, tenantID string, id int64, patch MetricPatch) (*models.PostMetric, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	CountForTenant(ctx context.Context, tenantID string) (int64, error)
}

type MetricPatch struct {
	Likes          *int
	Comments       *int
	Shares         *int
	Impressions    *int
	Reach          *int
	Clicks         *int
	EngagementRate *float64
}

type metricRepository struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db, resolver: ownership.NewResolver(db)}
}

func (r *metricRepository) scoped(ctx context.Context, tenantID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.PostMetric{}).
		Joins("JOIN posts ON posts.id = post_metrics.post_id").
		Where("posts.tenant_id = ?", tenantID)
}

func (r *metricRepository) List(ctx context.Context, tenantID string, postID *int64, limit int) ([]models.PostMetric, error) {
	var metrics []models.PostMetric
	query := r.scoped(ctx, tenantID)
	if postID != nil {
		query = query.Where("post_metrics.post_id = ?", *postID)
	}
	err := query.Order("post_metrics.recorded_at ASC").Limit(ClampLimit(limit)).Find(&metrics).Error
	return metrics, err
}

func (r *metricRepository) Get(ctx context.Context, tenantID string, id int64) (*models.PostMetric, error) {
	var metric models.PostMetric
	err := r.scoped(ctx, tenantID).
		Where("post_metrics.id = ?", id).
		First(&metric).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ownership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

// Create requires the referenced post to resolve to the caller's tenant; a
// post owned elsewhere fails with ErrForbidden, a missing post with
// ErrNotFound.
func (r *metricRepository) Create(ctx context.Context, tenantID string, metric *models.PostMetric) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := r.resolver.WithTx(tx).ResolveOwner(ctx, ownership.KindPost, metric.PostID)
		if errors.Is(err, ownership.ErrNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}
		if owner != tenantID {
			return ownership.ErrForbidden
		}
		metric.ID = 0
		return tx.Create(metric).Error
	})
}

func (r *metricRepository) Update(ctx context.Context, tenantID string, id int64, patch MetricPatch) (*models.PostMetric, error) {
	var updated *models.PostMetric
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var metric models.PostMetric
		err := tx.Model(&models.PostMetric{}).
			Joins("JOIN posts ON posts.id = post_metrics.post_id").
			Where("posts.tenant_id = ? AND post_metrics.id = ?", tenantID, id).
			First(&metric).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.Likes != nil {
			metric.Likes = *patch.Likes
		}
		if patch.Comments != nil {
			metric.Comments = *patch.Comments
		}
		if patch.Shares != nil {
			metric.Shares = *patch.Shares
		}
		if patch.Impressions != nil {
			metric.Impressions = *patch.Impressions
		}
		if patch.Reach != nil {
			metric.Reach = *patch.Reach
		}
		if patch.Clicks != nil {
			metric.Clicks = *patch.Clicks
		}
		if patch.EngagementRate != nil {
			metric.EngagementRate = *patch.EngagementRate
		}

		if err := tx.Save(&metric).Error; err != nil {
			return err
		}
		updated = &metric
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *metricRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var metric models.PostMetric
		err := tx.Model(&models.PostMetric{}).
			Joins("JOIN posts ON posts.id = post_metrics.post_id").
			Where("posts.tenant_id = ? AND post_metrics.id = ?", tenantID, id).
			First(&metric).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.Delete(&metric).Error
	})
}

func (r *metricRepository) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.scoped(ctx, tenantID).Count(&count).Error
	return count, err
}
