package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

type CalendarRepository interface {
	List(ctx context.Context, tenantID string, filters CalendarFilters, limit int) ([]models.ContentCalendarEntry, error)
	ListOn(ctx context.Context, tenantID string, day time.Time) ([]models.ContentCalendarEntry, error)
	Get(ctx context.Context, tenantID string, id int64) (*models.ContentCalendarEntry, error)
	Create(ctx context.Context, tenantID string, entry *models.ContentCalendarEntry) error
	Update(ctx context.Context, tenantID string, id int64, patch CalendarPatch) (*models.ContentCalendarEntry, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	CountForTenant(ctx context.Context, tenantID string) (int64, error)
}

type CalendarFilters struct {
	Category *string
	From     *time.Time
	To       *time.Time
}

// CalendarPatch carries partial-update fields. SetPostID distinguishes
// clearing the post link (SetPostID true, PostID nil) from not mentioning it.
type CalendarPatch struct {
	Title       *string
	Description *string
	EntryDate   *time.Time
	TimeSlot    *string
	SetPostID   bool
	PostID      *int64
	Category    *string
	Color       *string
}

type calendarRepository struct {
	db       *gorm.DB
	resolver *ownership.Resolver
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db, resolver: ownership.NewResolver(db)}
}

func (r *calendarRepository) List(ctx context.Context, tenantID string, filters CalendarFilters, limit int) ([]models.ContentCalendarEntry, error) {
	var entries []models.ContentCalendarEntry
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.From != nil {
		query = query.Where("entry_date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("entry_date <= ?", *filters.To)
	}
	err := query.Order("entry_date ASC").Limit(ClampLimit(limit)).Find(&entries).Error
	return entries, err
}

func (r *calendarRepository) ListOn(ctx context.Context, tenantID string, day time.Time) ([]models.ContentCalendarEntry, error) {
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	var entries []models.ContentCalendarEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entry_date = ?", tenantID, date).
		Order("time_slot ASC").
		Find(&entries).Error
	return entries, err
}

func (r *calendarRepository) Get(ctx context.Context, tenantID string, id int64) (*models.ContentCalendarEntry, error) {
	var entry models.ContentCalendarEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ownership.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create rejects a post linkage the caller does not own. The link itself is
// informational and does not change the entry's own ownership.
func (r *calendarRepository) Create(ctx context.Context, tenantID string, entry *models.ContentCalendarEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if entry.PostID != nil {
			ok, err := r.resolver.WithTx(tx).Authorize(ctx, tenantID, ownership.KindPost, *entry.PostID)
			if err != nil {
				return err
			}
			if !ok {
				return ownership.ErrForbidden
			}
		}
		entry.ID = 0
		entry.TenantID = tenantID
		if entry.Color == "" {
			entry.Color = models.DefaultEntryColor
		}
		return tx.Create(entry).Error
	})
}

func (r *calendarRepository) Update(ctx context.Context, tenantID string, id int64, patch CalendarPatch) (*models.ContentCalendarEntry, error) {
	var updated *models.ContentCalendarEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.ContentCalendarEntry
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ownership.ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.SetPostID {
			if patch.PostID != nil {
				ok, err := r.resolver.WithTx(tx).Authorize(ctx, tenantID, ownership.KindPost, *patch.PostID)
				if err != nil {
					return err
				}
				if !ok {
					return ownership.ErrForbidden
				}
			}
			entry.PostID = patch.PostID
		}
		if patch.Title != nil {
			entry.Title = *patch.Title
		}
		if patch.Description != nil {
			entry.Description = patch.Description
		}
		if patch.EntryDate != nil {
			entry.EntryDate = *patch.EntryDate
		}
		if patch.TimeSlot != nil {
			entry.TimeSlot = patch.TimeSlot
		}
		if patch.Category != nil {
			entry.Category = *patch.Category
		}
		if patch.Color != nil {
			entry.Color = *patch.Color
		}

		if err := tx.Save(&entry).Error; err != nil {
			return err
		}
		updated = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *calendarRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.ContentCalendarEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func (r *calendarRepository) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContentCalendarEntry{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
