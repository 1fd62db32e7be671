package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

// SnapshotRepository scopes audience snapshots through their parent account.
type SnapshotRepository interface {
	List(ctx context.Context, tenantID string, accountID *int64, limit int) ([]models.AudienceSnapshot, error)
	Get(ctx context.Context, tenantID string, id int64) (*models.AudienceSnapshot, error)
	Create(ctx context.Context, tenantID string, snapshot *models.AudienceSnapshot) error
	Update(ctx context.Context, tenantID string, id int64, patch SnapshotPatch) (*models.AudienceSnapshot, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	CountForTenant(ctx context.Context, tenantID string) (int64, error)
}

type SnapshotPatch struct {
	SnapshotDate   *time.Time
	Followers      *int
	Following      *int
	EngagementRate *float64
	TopPostType    *string
	AudienceGrowth *float64
	PeakHours      *[]string
}

type snapshotRepository struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db, resolver: ownership.NewResolver(db)}
}

func (r *snapshotRepository) scoped(ctx context.Context, tenantID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.AudienceSnapshot{}).
		Joins("JOIN social_accounts ON social_accounts.id = audience_snapshots.account_id").
		Where("social_accounts.tenant_id = ?", tenantID)
}

func (r *snapshotRepository) List(ctx context.Context, tenantID string, accountID *int64, limit int) ([]models.AudienceSnapshot, error) {
	var snapshots []models.AudienceSnapshot
	query := r.scoped(ctx, tenantID)
	if accountID != nil {
		query = query.Where("audience_snapshots.account_id = ?", *accountID)
	}
	err := query.Order("audience_snapshots.snapshot_date ASC").Limit(ClampLimit(limit)).Find(&snapshots).Error
	return snapshots, err
}

func (r *snapshotRepository) Get(ctx context.Context, tenantID string, id int64) (*models.AudienceSnapshot, error) {
	var snapshot models.AudienceSnapshot
	err := r.scoped(ctx, tenantID).
		Where("audience_snapshots.id = ?", id).
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ownership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) Create(ctx context.Context, tenantID string, snapshot *models.AudienceSnapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := r.resolver.WithTx(tx).ResolveOwner(ctx, ownership.KindSocialAccount, snapshot.AccountID)
		if errors.Is(err, ownership.ErrNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}
		if owner != tenantID {
			return ownership.ErrForbidden
		}
		snapshot.ID = 0
		return tx.Create(snapshot).Error
	})
}

func (r *snapshotRepository) Update(ctx context.Context, tenantID string, id int64, patch SnapshotPatch) (*models.AudienceSnapshot, error) {
	var updated *models.AudienceSnapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snapshot models.AudienceSnapshot
		err := tx.Model(&models.AudienceSnapshot{}).
			Joins("JOIN social_accounts ON social_accounts.id = audience_snapshots.account_id").
			Where("social_accounts.tenant_id = ? AND audience_snapshots.id = ?", tenantID, id).
			First(&snapshot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.SnapshotDate != nil {
			snapshot.SnapshotDate = *patch.SnapshotDate
		}
		if patch.Followers != nil {
			snapshot.Followers = *patch.Followers
		}
		if patch.Following != nil {
			snapshot.Following = *patch.Following
		}
		if patch.EngagementRate != nil {
			snapshot.EngagementRate = *patch.EngagementRate
		}
		if patch.TopPostType != nil {
			snapshot.TopPostType = patch.TopPostType
		}
		if patch.AudienceGrowth != nil {
			snapshot.AudienceGrowth = *patch.AudienceGrowth
		}
		if patch.PeakHours != nil {
			raw, err := models.JSONStringList(*patch.PeakHours)
			if err != nil {
				return err
			}
			snapshot.PeakHours = raw
		}

		if err := tx.Save(&snapshot).Error; err != nil {
			return err
		}
		updated = &snapshot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *snapshotRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snapshot models.AudienceSnapshot
		err := tx.Model(&models.AudienceSnapshot{}).
			Joins("JOIN social_accounts ON social_accounts.id = audience_snapshots.account_id").
			Where("social_accounts.tenant_id = ? AND audience_snapshots.id = ?", tenantID, id).
			First(&snapshot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}
		return tx.Delete(&snapshot).Error
	})
}

func (r *snapshotRepository) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.scoped(ctx, tenantID).Count(&count).Error
	return count, err
}
