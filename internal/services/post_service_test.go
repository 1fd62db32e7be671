package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
)

// MockPostRepository is a mock implementation of repository.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context, tenantID string, filters repository.PostFilters, limit int) ([]models.Post, error) {
	args := m.Called(ctx, tenantID, filters, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Get(ctx context.Context, tenantID string, id int64) (*models.Post, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, tenantID string, post *models.Post) error {
	args := m.Called(ctx, tenantID, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, tenantID string, id int64, patch repository.PostPatch) (*models.Post, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListUpcoming(ctx context.Context, tenantID string, from, to time.Time) ([]models.Post, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListScheduledOn(ctx context.Context, tenantID string, day time.Time) ([]models.Post, error) {
	args := m.Called(ctx, tenantID, day)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) CountForTenant(ctx context.Context, tenantID string) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestPostService(repo *MockPostRepository) PostService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewPostService(repo, nil, logger)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	_, err := svc.Create(context.Background(), "tenant-a", &CreatePostRequest{
		AccountID: 1,
		Content:   "   ",
		PostType:  models.PostTypeText,
	})

	require.Error(t, err)
	_, ok := IsValidationError(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "Create")
}

func TestCreatePost_UnknownPostType(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	_, err := svc.Create(context.Background(), "tenant-a", &CreatePostRequest{
		AccountID: 1,
		Content:   "hello",
		PostType:  "reel",
	})

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "post_type", verr.Field)
	assert.NotEmpty(t, verr.Suggestions)
}

func TestCreatePost_ScheduledRequiresFutureTime(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	_, err := svc.Create(context.Background(), "tenant-a", &CreatePostRequest{
		AccountID: 1,
		Content:   "hello",
		PostType:  models.PostTypeText,
		Status:    models.PostStatusScheduled,
	})
	require.Error(t, err, "scheduled post without scheduled_at must fail")

	past := time.Now().Add(-time.Hour)
	_, err = svc.Create(context.Background(), "tenant-a", &CreatePostRequest{
		AccountID:   1,
		Content:     "hello",
		PostType:    models.PostTypeText,
		Status:      models.PostStatusScheduled,
		ScheduledAt: &past,
	})
	require.Error(t, err, "scheduled post in the past must fail")
	_, ok := IsValidationError(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "Create")
}

func TestCreatePost_DefaultsToDraft(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	repo.On("Create", mock.Anything, "tenant-a", mock.MatchedBy(func(p *models.Post) bool {
		return p.Status == models.PostStatusDraft && p.PublishedAt == nil
	})).Return(nil)

	post, err := svc.Create(context.Background(), "tenant-a", &CreatePostRequest{
		AccountID: 1,
		Content:   "hello",
		PostType:  models.PostTypeText,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	repo.AssertExpectations(t)
}

func TestCreatePost_PublishedStampsPublishedAt(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	repo.On("Create", mock.Anything, "tenant-a", mock.MatchedBy(func(p *models.Post) bool {
		return p.Status == models.PostStatusPublished && p.PublishedAt != nil
	})).Return(nil)

	post, err := svc.Create(context.Background(), "tenant-a", &CreatePostRequest{
		AccountID: 1,
		Content:   "hello",
		PostType:  models.PostTypeText,
		Status:    models.PostStatusPublished,
	})

	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	repo.AssertExpectations(t)
}

func TestPublishPost_AlreadyPublished(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	published := time.Now().Add(-time.Hour)
	repo.On("Get", mock.Anything, "tenant-a", int64(7)).Return(&models.Post{
		ID:          7,
		Status:      models.PostStatusPublished,
		PublishedAt: &published,
	}, nil)

	_, err := svc.Publish(context.Background(), "tenant-a", 7)

	require.Error(t, err)
	_, ok := IsConflictError(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "Update")
}

func TestPublishPost_ClearsSchedule(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	scheduledAt := time.Now().Add(time.Hour)
	repo.On("Get", mock.Anything, "tenant-a", int64(7)).Return(&models.Post{
		ID:          7,
		Status:      models.PostStatusScheduled,
		ScheduledAt: &scheduledAt,
	}, nil)
	repo.On("Update", mock.Anything, "tenant-a", int64(7), mock.MatchedBy(func(patch repository.PostPatch) bool {
		return patch.Status != nil && *patch.Status == models.PostStatusPublished &&
			patch.SetPublishedAt && patch.PublishedAt != nil &&
			patch.SetScheduledAt && patch.ScheduledAt == nil
	})).Return(&models.Post{ID: 7, Status: models.PostStatusPublished}, nil)

	post, err := svc.Publish(context.Background(), "tenant-a", 7)

	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, post.Status)
	repo.AssertExpectations(t)
}

func TestSchedulePost_RejectsPastTime(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	_, err := svc.Schedule(context.Background(), "tenant-a", 7, time.Now().Add(-time.Minute))

	require.Error(t, err)
	_, ok := IsValidationError(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdatePost_ClearScheduleOnExplicitNull(t *testing.T) {
	repo := new(MockPostRepository)
	svc := newTestPostService(repo)

	repo.On("Update", mock.Anything, "tenant-a", int64(3), mock.MatchedBy(func(patch repository.PostPatch) bool {
		return patch.SetScheduledAt && patch.ScheduledAt == nil
	})).Return(&models.Post{ID: 3, Status: models.PostStatusDraft}, nil)

	_, err := svc.Update(context.Background(), "tenant-a", 3, &UpdatePostRequest{
		SetScheduledAt: true,
		ScheduledAt:    nil,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListUpcoming_ClampsWindow(t *testing.T) {
	testCases := []struct {
		days     int
		expected int
	}{
		{0, 7},
		{-1, 7},
		{30, 30},
		{365, 90},
	}

	for _, tc := range testCases {
		repo := new(MockPostRepository)
		svc := newTestPostService(repo)

		repo.On("ListUpcoming", mock.Anything, "tenant-a", mock.Anything, mock.MatchedBy(func(to time.Time) bool {
			expectedTo := time.Now().AddDate(0, 0, tc.expected)
			return to.Sub(expectedTo).Abs() < time.Minute
		})).Return([]models.Post{}, nil)

		_, err := svc.ListUpcoming(context.Background(), "tenant-a", tc.days)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	}
}
