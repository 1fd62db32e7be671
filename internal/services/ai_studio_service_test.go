package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/socialpro-hub/content-service/internal/clients/genai"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
)

// MockIdeaRepository is a mock implementation of repository.IdeaRepository
type MockIdeaRepository struct {
	mock.Mock
}

func (m *MockIdeaRepository) List(ctx context.Context, tenantID string, filters repository.IdeaFilters, limit int) ([]models.AIContentIdea, error) {
	args := m.Called(ctx, tenantID, filters, limit)
	return args.Get(0).([]models.AIContentIdea), args.Error(1)
}

func (m *MockIdeaRepository) ListRecentUnused(ctx context.Context, tenantID string, limit int) ([]models.AIContentIdea, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Get(0).([]models.AIContentIdea), args.Error(1)
}

func (m *MockIdeaRepository) Get(ctx context.Context, tenantID string, id int64) (*models.AIContentIdea, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIContentIdea), args.Error(1)
}

func (m *MockIdeaRepository) Create(ctx context.Context, tenantID string, idea *models.AIContentIdea) error {
	args := m.Called(ctx, tenantID, idea)
	return args.Error(0)
}

func (m *MockIdeaRepository) CreateBatch(ctx context.Context, tenantID string, ideas []models.AIContentIdea) ([]models.AIContentIdea, error) {
	args := m.Called(ctx, tenantID, ideas)
	return args.Get(0).([]models.AIContentIdea), args.Error(1)
}

func (m *MockIdeaRepository) Update(ctx context.Context, tenantID string, id int64, patch repository.IdeaPatch) (*models.AIContentIdea, error) {
	args := m.Called(ctx, tenantID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIContentIdea), args.Error(1)
}

func (m *MockIdeaRepository) Delete(ctx context.Context, tenantID string, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockIdeaRepository) Counts(ctx context.Context, tenantID string) (int64, int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// fakeProvider serves a canned generateContent response.
func fakeProvider(t *testing.T, text string) *httptest.Server {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	require.NoError(t, err)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}))
}

func newTestAIStudioService(providerURL string, ideas repository.IdeaRepository) AIStudioService {
	client := genai.NewClient(providerURL, "test-key", "", 5*time.Second)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewAIStudioService(client, ideas, logger)
}

func TestGenerateIdeas_PersistsParsedIdeas(t *testing.T) {
	server := fakeProvider(t, "```json\n[{\"title\":\"Hook A\",\"content\":\"Body A\"},{\"title\":\"\",\"content\":\"Body B\"}]\n```")
	defer server.Close()

	repo := new(MockIdeaRepository)
	repo.On("CreateBatch", mock.Anything, "tenant-a", mock.MatchedBy(func(ideas []models.AIContentIdea) bool {
		return len(ideas) == 2 &&
			ideas[0].Title == "Hook A" &&
			ideas[1].Title == "Untitled" &&
			ideas[0].IdeaType == models.IdeaTypeHook
	})).Return([]models.AIContentIdea{{ID: 1}, {ID: 2}}, nil)

	svc := newTestAIStudioService(server.URL, repo)
	saved, err := svc.GenerateIdeas(context.Background(), "tenant-a", &GenerateIdeasRequest{
		Topic:       "sustainability",
		Platform:    "twitter",
		ContentType: models.IdeaTypeHook,
	})

	require.NoError(t, err)
	assert.Len(t, saved, 2)
	repo.AssertExpectations(t)
}

func TestGenerateIdeas_UnparseableResponseSavesNothing(t *testing.T) {
	server := fakeProvider(t, "Here are some great ideas for you!")
	defer server.Close()

	repo := new(MockIdeaRepository)
	svc := newTestAIStudioService(server.URL, repo)

	_, err := svc.GenerateIdeas(context.Background(), "tenant-a", &GenerateIdeasRequest{
		Topic:    "sustainability",
		Platform: "twitter",
	})

	require.Error(t, err)
	_, ok := IsProviderError(err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "CreateBatch")
}

func TestGenerateIdeas_EmptyTopic(t *testing.T) {
	repo := new(MockIdeaRepository)
	svc := newTestAIStudioService("http://127.0.0.1:1", repo)

	_, err := svc.GenerateIdeas(context.Background(), "tenant-a", &GenerateIdeasRequest{
		Topic:    "  ",
		Platform: "twitter",
	})

	require.Error(t, err)
	_, ok := IsValidationError(err)
	assert.True(t, ok)
}

func TestWriteCaption_DefaultsPlatform(t *testing.T) {
	server := fakeProvider(t, "  Check out our new drop! 🔥 #style  ")
	defer server.Close()

	svc := newTestAIStudioService(server.URL, new(MockIdeaRepository))
	caption, err := svc.WriteCaption(context.Background(), "tenant-a", &WriteCaptionRequest{
		Description: "new product drop",
	})

	require.NoError(t, err)
	assert.Equal(t, "Check out our new drop! 🔥 #style", caption)
}

func TestResearchHashtags_ParsesGroups(t *testing.T) {
	server := fakeProvider(t, `{"high_reach":["#a"],"medium_reach":["#b","#c"],"low_reach":[]}`)
	defer server.Close()

	svc := newTestAIStudioService(server.URL, new(MockIdeaRepository))
	research, err := svc.ResearchHashtags(context.Background(), "tenant-a", "sustainability")

	require.NoError(t, err)
	assert.Equal(t, []string{"#a"}, research.HighReach)
	assert.Len(t, research.MediumReach, 2)
	assert.Empty(t, research.LowReach)
}

func TestResearchHashtags_ProviderDown(t *testing.T) {
	svc := newTestAIStudioService("http://127.0.0.1:1", new(MockIdeaRepository))

	_, err := svc.ResearchHashtags(context.Background(), "tenant-a", "sustainability")

	require.Error(t, err)
	_, ok := IsProviderError(err)
	assert.True(t, ok)
}
