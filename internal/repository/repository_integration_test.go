package repository

// Database tests run against a throwaway Postgres set via CONTENT_TEST_DSN,
// for example:
//
//	CONTENT_TEST_DSN="host=localhost user=postgres password=postgres dbname=content_test port=5432 sslmode=disable" go test ./internal/repository/

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/ownership"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("CONTENT_TEST_DSN")
	if dsn == "" {
		t.Skip("CONTENT_TEST_DSN not set, skipping database tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to test database")

	err = db.AutoMigrate(
		&models.SocialAccount{},
		&models.Post{},
		&models.PostMetric{},
		&models.AudienceSnapshot{},
		&models.ContentCalendarEntry{},
		&models.HashtagGroup{},
		&models.AIContentIdea{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// newTenant returns a unique tenant id so tests never see each other's rows.
func newTenant() string {
	return "test-" + uuid.NewString()
}

func createTestAccount(t *testing.T, db *gorm.DB, tenantID string) *models.SocialAccount {
	t.Helper()
	account := &models.SocialAccount{
		Platform:    "twitter",
		AccountName: "@" + tenantID[:13],
		Status:      models.AccountStatusConnected,
	}
	require.NoError(t, NewAccountRepository(db).Create(context.Background(), tenantID, account))
	return account
}

func createTestPost(t *testing.T, db *gorm.DB, tenantID string, accountID int64, status string) *models.Post {
	t.Helper()
	post := &models.Post{
		AccountID: accountID,
		Content:   "fixture post",
		PostType:  models.PostTypeText,
		Status:    status,
	}
	if status == models.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), tenantID, post))
	return post
}

func TestAccountRepository_CrossTenantInvisibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository(db)

	tenantA := newTenant()
	tenantB := newTenant()
	account := createTestAccount(t, db, tenantA)

	// The owner sees it.
	got, err := repo.Get(ctx, tenantA, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)

	// Another tenant gets not-found, not forbidden.
	_, err = repo.Get(ctx, tenantB, account.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound)

	err = repo.Delete(ctx, tenantB, account.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound)

	accounts, err := repo.List(ctx, tenantB, AccountFilters{}, 0)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestMetricRepository_CrossTenantParentForbidden(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewMetricRepository(db)

	tenantA := newTenant()
	tenantB := newTenant()
	account := createTestAccount(t, db, tenantA)
	post := createTestPost(t, db, tenantA, account.ID, models.PostStatusPublished)

	// Naming another tenant's post on create is the one place forbidden leaks.
	err := repo.Create(ctx, tenantB, &models.PostMetric{PostID: post.ID, Likes: 10})
	assert.ErrorIs(t, err, ownership.ErrForbidden)

	// A dangling post reference stays a plain not-found.
	err = repo.Create(ctx, tenantA, &models.PostMetric{PostID: post.ID + 100000, Likes: 10})
	assert.ErrorIs(t, err, ownership.ErrNotFound)

	// Reads of an existing foreign metric never reveal it exists.
	metric := &models.PostMetric{PostID: post.ID, Likes: 5, EngagementRate: 1.5}
	require.NoError(t, repo.Create(ctx, tenantA, metric))

	_, err = repo.Get(ctx, tenantB, metric.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound)
}

func TestAccountRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	accounts := NewAccountRepository(db)
	calendars := NewCalendarRepository(db)

	tenantID := newTenant()
	account := createTestAccount(t, db, tenantID)
	post := createTestPost(t, db, tenantID, account.ID, models.PostStatusPublished)

	metric := &models.PostMetric{PostID: post.ID, Likes: 42, EngagementRate: 2.0}
	require.NoError(t, NewMetricRepository(db).Create(ctx, tenantID, metric))

	snapshot := &models.AudienceSnapshot{
		AccountID:    account.ID,
		SnapshotDate: time.Now().UTC(),
		Followers:    100,
	}
	require.NoError(t, NewSnapshotRepository(db).Create(ctx, tenantID, snapshot))

	entry := &models.ContentCalendarEntry{
		Title:     "Launch day",
		Category:  "announcement",
		Color:     models.DefaultEntryColor,
		EntryDate: time.Now().UTC(),
		PostID:    &post.ID,
	}
	require.NoError(t, calendars.Create(ctx, tenantID, entry))

	require.NoError(t, accounts.Delete(ctx, tenantID, account.ID))

	_, err := NewPostRepository(db).Get(ctx, tenantID, post.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound, "posts must go with the account")

	_, err = NewMetricRepository(db).Get(ctx, tenantID, metric.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound, "metrics must go with their posts")

	_, err = NewSnapshotRepository(db).Get(ctx, tenantID, snapshot.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound, "snapshots must go with the account")

	// The calendar entry survives with its link cleared.
	kept, err := calendars.Get(ctx, tenantID, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.PostID)
}

func TestAnalyticsRepository_TopPostsTieBreak(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	analytics := NewAnalyticsRepository(db)
	metrics := NewMetricRepository(db)

	tenantID := newTenant()
	account := createTestAccount(t, db, tenantID)

	postA := createTestPost(t, db, tenantID, account.ID, models.PostStatusPublished)
	postB := createTestPost(t, db, tenantID, account.ID, models.PostStatusPublished)
	postC := createTestPost(t, db, tenantID, account.ID, models.PostStatusPublished)

	recorded := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, metrics.Create(ctx, tenantID, &models.PostMetric{
		PostID: postA.ID, Likes: 100, EngagementRate: 3.0, RecordedAt: recorded,
	}))
	require.NoError(t, metrics.Create(ctx, tenantID, &models.PostMetric{
		PostID: postB.ID, Likes: 50, EngagementRate: 3.0, RecordedAt: recorded,
	}))
	require.NoError(t, metrics.Create(ctx, tenantID, &models.PostMetric{
		PostID: postC.ID, Likes: 10, EngagementRate: 5.0, RecordedAt: recorded,
	}))

	top, err := analytics.TopPosts(ctx, tenantID, SeriesFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, postC.ID, top[0].PostID, "highest engagement rate wins")
	// Tied rate and recorded_at fall back to the newest metric id.
	assert.Equal(t, postB.ID, top[1].PostID)
	assert.Equal(t, postA.ID, top[2].PostID)

	// Platform comes through the account join, not the post row.
	assert.Equal(t, account.Platform, top[0].Platform)
}

func TestAnalyticsRepository_SeriesPlatformFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	analytics := NewAnalyticsRepository(db)
	metrics := NewMetricRepository(db)

	tenantID := newTenant()
	twitter := createTestAccount(t, db, tenantID)

	instagram := &models.SocialAccount{
		Platform:    "instagram",
		AccountName: "@insta-" + tenantID[:8],
		Status:      models.AccountStatusConnected,
	}
	require.NoError(t, NewAccountRepository(db).Create(ctx, tenantID, instagram))

	twitterPost := createTestPost(t, db, tenantID, twitter.ID, models.PostStatusPublished)
	instagramPost := createTestPost(t, db, tenantID, instagram.ID, models.PostStatusPublished)

	require.NoError(t, metrics.Create(ctx, tenantID, &models.PostMetric{
		PostID: twitterPost.ID, Likes: 10, EngagementRate: 2.0,
	}))
	require.NoError(t, metrics.Create(ctx, tenantID, &models.PostMetric{
		PostID: instagramPost.ID, Likes: 20, EngagementRate: 4.0,
	}))

	platform := "instagram"
	series, err := analytics.MetricSeries(ctx, tenantID, SeriesFilters{Platform: &platform}, 0)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, instagramPost.ID, series[0].PostID)
	assert.Equal(t, "instagram", series[0].Platform)

	totals, err := analytics.Totals(ctx, tenantID, SeriesFilters{Platform: &platform})
	require.NoError(t, err)
	assert.Equal(t, int64(20), totals.Likes)

	top, err := analytics.TopPosts(ctx, tenantID, SeriesFilters{Platform: &platform}, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "instagram", top[0].Platform)
}

func TestAnalyticsRepository_TotalsAndSummaryAgree(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	analytics := NewAnalyticsRepository(db)
	metrics := NewMetricRepository(db)

	tenantID := newTenant()
	account := createTestAccount(t, db, tenantID)
	postA := createTestPost(t, db, tenantID, account.ID, models.PostStatusPublished)
	postB := createTestPost(t, db, tenantID, account.ID, models.PostStatusPublished)
	createTestPost(t, db, tenantID, account.ID, models.PostStatusDraft)
	createTestPost(t, db, tenantID, account.ID, models.PostStatusFailed)

	require.NoError(t, NewSnapshotRepository(db).Create(ctx, tenantID, &models.AudienceSnapshot{
		AccountID:    account.ID,
		SnapshotDate: time.Now().UTC(),
		Followers:    500,
	}))
	require.NoError(t, NewCalendarRepository(db).Create(ctx, tenantID, &models.ContentCalendarEntry{
		Title:     "Totals fixture",
		Category:  "announcement",
		Color:     models.DefaultEntryColor,
		EntryDate: time.Now().UTC(),
	}))

	require.NoError(t, metrics.Create(ctx, tenantID, &models.PostMetric{
		PostID: postA.ID, Likes: 100, Comments: 20, Shares: 10, Impressions: 1000, EngagementRate: 2.0,
	}))
	require.NoError(t, metrics.Create(ctx, tenantID, &models.PostMetric{
		PostID: postB.ID, Likes: 300, Comments: 40, Shares: 30, Impressions: 3000, EngagementRate: 4.0,
	}))

	totals, err := analytics.Totals(ctx, tenantID, SeriesFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(400), totals.Likes)
	assert.Equal(t, int64(60), totals.Comments)
	assert.Equal(t, int64(40), totals.Shares)
	assert.Equal(t, int64(4000), totals.Impressions)
	assert.InDelta(t, 3.0, totals.AvgEngagementRate, 0.001)

	summary, err := analytics.DashboardSummary(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalAccounts)
	assert.Equal(t, int64(4), summary.TotalPosts)
	assert.Equal(t, int64(2), summary.PublishedPosts)
	assert.Equal(t, int64(1), summary.DraftPosts)
	assert.Equal(t, int64(1), summary.FailedPosts)
	assert.Equal(t, int64(1), summary.CalendarEntries)
	assert.Equal(t, int64(1), summary.AudienceSnapshots)
	assert.Equal(t, int64(2), summary.PostMetrics)
	assert.Equal(t, totals.Likes, summary.Totals.Likes, "summary and totals must agree")
}

func TestPostRepository_UpcomingWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	tenantID := newTenant()
	account := createTestAccount(t, db, tenantID)

	soon := time.Now().UTC().Add(48 * time.Hour)
	far := time.Now().UTC().AddDate(0, 0, 30)

	inWindow := &models.Post{
		AccountID: account.ID, Content: "soon", PostType: models.PostTypeText,
		Status: models.PostStatusScheduled, ScheduledAt: &soon,
	}
	require.NoError(t, repo.Create(ctx, tenantID, inWindow))

	outOfWindow := &models.Post{
		AccountID: account.ID, Content: "far", PostType: models.PostTypeText,
		Status: models.PostStatusScheduled, ScheduledAt: &far,
	}
	require.NoError(t, repo.Create(ctx, tenantID, outOfWindow))

	upcoming, err := repo.ListUpcoming(ctx, tenantID, time.Now().UTC(), time.Now().UTC().AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, inWindow.ID, upcoming[0].ID)
}
