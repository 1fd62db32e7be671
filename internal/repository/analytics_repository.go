package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/models"
)

// AnalyticsRepository runs tenant-scoped aggregation queries. Every metric
// query reaches metrics through a join on posts so the tenant boundary is
// enforced in SQL, never by filtering in application code.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// SeriesFilters narrow a metric series. Nil bounds leave that side of the
// range open.
type SeriesFilters struct {
	AccountID *int64
	Platform  *string
	From      *time.Time
	To        *time.Time
}

// ownedMetrics reaches metrics through the post and its account; the
// platform lives on social_accounts, not on the post row.
func (r *AnalyticsRepository) ownedMetrics(ctx context.Context, tenantID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("post_metrics pm").
		Joins("JOIN posts p ON p.id = pm.post_id").
		Joins("JOIN social_accounts a ON a.id = p.account_id").
		Where("p.tenant_id = ?", tenantID)
}

// DashboardSummary builds the tenant dashboard from count and sum queries.
func (r *AnalyticsRepository) DashboardSummary(ctx context.Context, tenantID string) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{
		TenantID:    tenantID,
		GeneratedAt: time.Now().UTC(),
	}

	var accountCounts struct {
		Total     int64
		Connected int64
		Followers int64
	}
	err := r.db.WithContext(ctx).
		Table("social_accounts").
		Select("COUNT(*) as total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as connected, COALESCE(SUM(followers_count), 0) as followers", models.AccountStatusConnected).
		Where("tenant_id = ?", tenantID).
		Scan(&accountCounts).Error
	if err != nil {
		return nil, err
	}
	summary.TotalAccounts = accountCounts.Total
	summary.ConnectedAccounts = accountCounts.Connected
	summary.TotalFollowers = accountCounts.Followers

	var postCounts struct {
		Total     int64
		Scheduled int64
		Published int64
		Drafts    int64
		Failed    int64
	}
	err = r.db.WithContext(ctx).
		Table("posts").
		Select(`COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as scheduled,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as published,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as drafts,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as failed`,
			models.PostStatusScheduled, models.PostStatusPublished, models.PostStatusDraft, models.PostStatusFailed).
		Where("tenant_id = ?", tenantID).
		Scan(&postCounts).Error
	if err != nil {
		return nil, err
	}
	summary.TotalPosts = postCounts.Total
	summary.ScheduledPosts = postCounts.Scheduled
	summary.PublishedPosts = postCounts.Published
	summary.DraftPosts = postCounts.Drafts
	summary.FailedPosts = postCounts.Failed

	var ideaCounts struct {
		Total int64
		Used  int64
	}
	err = r.db.WithContext(ctx).
		Table("ai_content_ideas").
		Select("COUNT(*) as total, COALESCE(SUM(CASE WHEN used THEN 1 ELSE 0 END), 0) as used").
		Where("tenant_id = ?", tenantID).
		Scan(&ideaCounts).Error
	if err != nil {
		return nil, err
	}
	summary.TotalIdeas = ideaCounts.Total
	summary.UsedIdeas = ideaCounts.Used

	err = r.db.WithContext(ctx).
		Table("hashtag_groups").
		Where("tenant_id = ?", tenantID).
		Count(&summary.HashtagGroups).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Table("content_calendar_entries").
		Where("tenant_id = ?", tenantID).
		Count(&summary.CalendarEntries).Error
	if err != nil {
		return nil, err
	}

	// Snapshots and metrics carry no tenant column; count through their parents.
	err = r.db.WithContext(ctx).
		Table("audience_snapshots s").
		Joins("JOIN social_accounts a ON a.id = s.account_id").
		Where("a.tenant_id = ?", tenantID).
		Count(&summary.AudienceSnapshots).Error
	if err != nil {
		return nil, err
	}

	if err := r.ownedMetrics(ctx, tenantID).Count(&summary.PostMetrics).Error; err != nil {
		return nil, err
	}

	totals, err := r.Totals(ctx, tenantID, SeriesFilters{})
	if err != nil {
		return nil, err
	}
	summary.Totals = *totals

	return summary, nil
}

// MetricSeries returns metric rows for charting, ordered by recorded_at
// ascending.
func (r *AnalyticsRepository) MetricSeries(ctx context.Context, tenantID string, filters SeriesFilters, limit int) ([]models.MetricSeriesPoint, error) {
	query := r.ownedMetrics(ctx, tenantID).
		Select(`pm.post_id, p.account_id, a.platform,
			pm.likes, pm.comments, pm.shares, pm.impressions, pm.reach, pm.clicks,
			pm.engagement_rate, pm.recorded_at`)
	query = applySeriesFilters(query, filters)

	var points []models.MetricSeriesPoint
	err := query.Order("pm.recorded_at ASC").Limit(ClampLimit(limit)).Scan(&points).Error
	return points, err
}

// TopPosts ranks a tenant's posts by engagement rate. Ties break on the
// newer recording, then the higher metric id, so the ordering is total.
func (r *AnalyticsRepository) TopPosts(ctx context.Context, tenantID string, filters SeriesFilters, limit int) ([]models.TopPost, error) {
	query := r.ownedMetrics(ctx, tenantID).
		Select(`pm.post_id, p.account_id, a.platform, p.content, p.post_type, p.published_at,
			pm.likes, pm.comments, pm.shares, pm.impressions,
			pm.engagement_rate, pm.recorded_at`)
	query = applySeriesFilters(query, filters)

	if limit <= 0 {
		limit = 5
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var posts []models.TopPost
	err := query.
		Order("pm.engagement_rate DESC, pm.recorded_at DESC, pm.id DESC").
		Limit(limit).
		Scan(&posts).Error
	return posts, err
}

// Totals sums engagement figures over the tenant's owned metrics.
func (r *AnalyticsRepository) Totals(ctx context.Context, tenantID string, filters SeriesFilters) (*models.MetricTotals, error) {
	query := r.ownedMetrics(ctx, tenantID).
		Select(`COALESCE(SUM(pm.likes), 0) as likes,
			COALESCE(SUM(pm.comments), 0) as comments,
			COALESCE(SUM(pm.shares), 0) as shares,
			COALESCE(SUM(pm.impressions), 0) as impressions,
			COALESCE(SUM(pm.reach), 0) as reach,
			COALESCE(SUM(pm.clicks), 0) as clicks,
			COALESCE(SUM(pm.likes + pm.comments + pm.shares), 0) as engagement,
			COALESCE(AVG(pm.engagement_rate), 0) as avg_engagement_rate`)
	query = applySeriesFilters(query, filters)

	var totals models.MetricTotals
	if err := query.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// AudienceGrowth returns snapshot rows for the tenant's accounts ordered by
// snapshot date. An account filter narrows it to one account's series.
func (r *AnalyticsRepository) AudienceGrowth(ctx context.Context, tenantID string, filters SeriesFilters, limit int) ([]models.AudienceGrowthPoint, error) {
	query := r.db.WithContext(ctx).
		Table("audience_snapshots s").
		Select(`s.account_id, a.platform, s.followers, s.following,
			s.engagement_rate, s.snapshot_date`).
		Joins("JOIN social_accounts a ON a.id = s.account_id").
		Where("a.tenant_id = ?", tenantID)
	if filters.AccountID != nil {
		query = query.Where("s.account_id = ?", *filters.AccountID)
	}
	if filters.Platform != nil {
		query = query.Where("a.platform = ?", *filters.Platform)
	}
	if filters.From != nil {
		query = query.Where("s.snapshot_date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("s.snapshot_date <= ?", *filters.To)
	}

	var points []models.AudienceGrowthPoint
	err := query.Order("s.snapshot_date ASC, s.account_id ASC").Limit(ClampLimit(limit)).Scan(&points).Error
	return points, err
}

func applySeriesFilters(query *gorm.DB, filters SeriesFilters) *gorm.DB {
	if filters.AccountID != nil {
		query = query.Where("p.account_id = ?", *filters.AccountID)
	}
	if filters.Platform != nil {
		query = query.Where("a.platform = ?", *filters.Platform)
	}
	if filters.From != nil {
		query = query.Where("pm.recorded_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("pm.recorded_at <= ?", *filters.To)
	}
	return query
}
