package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/socialpro-hub/content-service/internal/cache"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
)

// AnalyticsService defines tenant-scoped analytics operations
type AnalyticsService interface {
	// Dashboard returns the tenant summary, served from cache when fresh
	Dashboard(ctx context.Context, tenantID string) (*models.DashboardSummary, error)

	// MetricSeries returns metric rows for charting
	MetricSeries(ctx context.Context, tenantID string, query SeriesQuery) ([]models.MetricSeriesPoint, error)

	// TopPosts ranks the tenant's posts by engagement rate
	TopPosts(ctx context.Context, tenantID string, query SeriesQuery) ([]models.TopPost, error)

	// Totals sums engagement figures over the tenant's metrics
	Totals(ctx context.Context, tenantID string, query SeriesQuery) (*models.MetricTotals, error)

	// AudienceGrowth returns snapshot series for the tenant's accounts
	AudienceGrowth(ctx context.Context, tenantID string, query SeriesQuery) ([]models.AudienceGrowthPoint, error)

	// InvalidateDashboard drops the tenant's cached summary after a write
	InvalidateDashboard(tenantID string)
}

// SeriesQuery carries raw query parameters. Date strings are parsed
// leniently: a bound that does not parse is ignored rather than rejected.
type SeriesQuery struct {
	AccountID *int64
	Platform  *string
	StartDate string
	EndDate   string
	Limit     int
}

type analyticsService struct {
	analytics *repository.AnalyticsRepository
	dashCache *cache.DashboardCache
	logger    *logrus.Entry
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analytics *repository.AnalyticsRepository, dashCache *cache.DashboardCache, logger *logrus.Logger) AnalyticsService {
	return &analyticsService{
		analytics: analytics,
		dashCache: dashCache,
		logger:    logger.WithField("component", "analytics_service"),
	}
}

func (s *analyticsService) Dashboard(ctx context.Context, tenantID string) (*models.DashboardSummary, error) {
	if summary, ok := s.dashCache.Get(tenantID); ok {
		return summary, nil
	}

	summary, err := s.analytics.DashboardSummary(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	s.dashCache.Set(tenantID, summary)
	return summary, nil
}

func (s *analyticsService) MetricSeries(ctx context.Context, tenantID string, query SeriesQuery) ([]models.MetricSeriesPoint, error) {
	return s.analytics.MetricSeries(ctx, tenantID, s.toFilters(query), query.Limit)
}

func (s *analyticsService) TopPosts(ctx context.Context, tenantID string, query SeriesQuery) ([]models.TopPost, error) {
	return s.analytics.TopPosts(ctx, tenantID, s.toFilters(query), query.Limit)
}

func (s *analyticsService) Totals(ctx context.Context, tenantID string, query SeriesQuery) (*models.MetricTotals, error) {
	return s.analytics.Totals(ctx, tenantID, s.toFilters(query))
}

func (s *analyticsService) AudienceGrowth(ctx context.Context, tenantID string, query SeriesQuery) ([]models.AudienceGrowthPoint, error) {
	return s.analytics.AudienceGrowth(ctx, tenantID, s.toFilters(query), query.Limit)
}

func (s *analyticsService) InvalidateDashboard(tenantID string) {
	s.dashCache.Invalidate(tenantID)
}

func (s *analyticsService) toFilters(query SeriesQuery) repository.SeriesFilters {
	filters := repository.SeriesFilters{
		AccountID: query.AccountID,
		Platform:  query.Platform,
	}
	if from, ok := parseDateBound(query.StartDate, false); ok {
		filters.From = &from
	} else if query.StartDate != "" {
		s.logger.WithField("start_date", query.StartDate).Debug("Ignoring malformed start_date")
	}
	if to, ok := parseDateBound(query.EndDate, true); ok {
		filters.To = &to
	} else if query.EndDate != "" {
		s.logger.WithField("end_date", query.EndDate).Debug("Ignoring malformed end_date")
	}
	return filters
}

// parseDateBound accepts RFC 3339 timestamps or bare YYYY-MM-DD dates. A
// bare end date is widened to the end of that day so the bound is inclusive.
func parseDateBound(value string, endOfDay bool) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}
