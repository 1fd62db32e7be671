package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/socialpro-hub/content-service/internal/models"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("CONTENT_TEST_DSN")
	if dsn == "" {
		t.Skip("CONTENT_TEST_DSN not set, skipping database tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.SocialAccount{},
		&models.Post{},
		&models.PostMetric{},
		&models.AudienceSnapshot{},
		&models.ContentCalendarEntry{},
		&models.HashtagGroup{},
		&models.AIContentIdea{},
	))
	return db
}

func TestSeedTenant_PopulatesOnceThenNoops(t *testing.T) {
	db := setupSeedTestDB(t)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewSeedService(db, nil, logger)

	tenantID := "seed-test-" + uuid.NewString()

	result, err := svc.SeedTenant(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Accounts)
	assert.Equal(t, 8, result.Posts)
	assert.Equal(t, 24, result.Snapshots)
	assert.Equal(t, 3, result.HashtagGroups)
	assert.Equal(t, 5, result.Calendar)
	assert.Equal(t, 3, result.Ideas)

	var accountCount int64
	require.NoError(t, db.Model(&models.SocialAccount{}).
		Where("tenant_id = ?", tenantID).Count(&accountCount).Error)
	assert.Equal(t, int64(2), accountCount)

	// A second seed is a silent no-op: success, nothing written.
	rerun, err := svc.SeedTenant(context.Background(), tenantID)
	require.NoError(t, err)
	assert.True(t, rerun.AlreadySeeded)
	assert.Zero(t, rerun.Accounts)
	assert.Zero(t, rerun.Posts)

	var postCount int64
	require.NoError(t, db.Model(&models.Post{}).
		Where("tenant_id = ?", tenantID).Count(&postCount).Error)
	assert.Equal(t, int64(8), postCount)
}
