package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

type PostRepository interface {
	List(ctx context.Context, tenantID string, filters PostFilters, limit int) ([]models.Post, error)
	Get(ctx context.Context, tenantID string, id int64) (*models.Post, error)
	Create(ctx context.Context, tenantID string, post *models.Post) error
	Update(ctx context.Context, tenantID string, id int64, patch PostPatch) (*models.Post, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	ListUpcoming(ctx context.Context, tenantID string, from, to time.Time) ([]models.Post, error)
	ListScheduledOn(ctx context.Context, tenantID string, day time.Time) ([]models.Post, error)
	CountForTenant(ctx context.Context, tenantID string) (int64, error)
}

type PostFilters struct {
	Status    *string
	PostType  *string
	AccountID *int64
}

// PostPatch carries partial-update fields; nil means untouched. ScheduledAt
// and PublishedAt distinguish "clear" (SetScheduledAt with nil value) from
// "absent" via the Set* presence flags.
type PostPatch struct {
	AccountID      *int64
	Content        *string
	MediaURLs      *[]string
	PostType       *string
	Status         *string
	SetScheduledAt bool
	ScheduledAt    *time.Time
	SetPublishedAt bool
	PublishedAt    *time.Time
	PlatformPostID *string
	Hashtags       *string
}

type postRepository struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, resolver: ownership.NewResolver(db)}
}

func (r *postRepository) List(ctx context.Context, tenantID string, filters PostFilters, limit int) ([]models.Post, error) {
	var posts []models.Post
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PostType != nil {
		query = query.Where("post_type = ?", *filters.PostType)
	}
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	err := query.Order("updated_at DESC").Limit(ClampLimit(limit)).Find(&posts).Error
	return posts, err
}

func (r *postRepository) Get(ctx context.Context, tenantID string, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ownership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create stamps the post with the tenant and verifies, inside the same
// transaction, that the referenced account belongs to that tenant. A create
// racing an account cascade delete therefore fails cleanly once the account
// row is gone.
func (r *postRepository) Create(ctx context.Context, tenantID string, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := r.resolver.WithTx(tx).Authorize(ctx, tenantID, ownership.KindSocialAccount, post.AccountID)
		if err != nil {
			return err
		}
		if !ok {
			return ownership.ErrForbidden
		}
		post.ID = 0
		post.TenantID = tenantID
		if post.Status == "" {
			post.Status = models.PostStatusDraft
		}
		return tx.Create(post).Error
	})
}

func (r *postRepository) Update(ctx context.Context, tenantID string, id int64, patch PostPatch) (*models.Post, error) {
	var updated *models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.AccountID != nil {
			ok, err := r.resolver.WithTx(tx).Authorize(ctx, tenantID, ownership.KindSocialAccount, *patch.AccountID)
			if err != nil {
				return err
			}
			if !ok {
				return ownership.ErrForbidden
			}
			post.AccountID = *patch.AccountID
		}
		if patch.Content != nil {
			post.Content = *patch.Content
		}
		if patch.MediaURLs != nil {
			raw, err := models.JSONStringList(*patch.MediaURLs)
			if err != nil {
				return err
			}
			post.MediaURLs = raw
		}
		if patch.PostType != nil {
			post.PostType = *patch.PostType
		}
		if patch.Status != nil {
			post.Status = *patch.Status
		}
		if patch.SetScheduledAt {
			post.ScheduledAt = patch.ScheduledAt
		}
		if patch.SetPublishedAt {
			post.PublishedAt = patch.PublishedAt
		}
		if patch.PlatformPostID != nil {
			post.PlatformPostID = patch.PlatformPostID
		}
		if patch.Hashtags != nil {
			post.Hashtags = patch.Hashtags
		}

		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		updated = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the post, its metric, and clears calendar links to it, as
// one transaction.
func (r *postRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.PostMetric{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ContentCalendarEntry{}).
			Where("post_id = ?", id).
			Update("post_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func (r *postRepository) ListUpcoming(ctx context.Context, tenantID string, from, to time.Time) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at <= ?",
			tenantID, models.PostStatusScheduled, from, to).
		Order("scheduled_at ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListScheduledOn(ctx context.Context, tenantID string, day time.Time) ([]models.Post, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tenantID, start, end).
		Order("scheduled_at ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
