package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/socialpro-hub/content-service/internal/clients/genai"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
)

// AIStudioService defines AI-assisted content operations. Provider output
// is parsed before anything is persisted; a response that cannot be parsed
// leaves the database untouched.
type AIStudioService interface {
	// GenerateIdeas asks the provider for content ideas and saves them
	GenerateIdeas(ctx context.Context, tenantID string, req *GenerateIdeasRequest) ([]models.AIContentIdea, error)

	// WriteCaption drafts a platform-native caption
	WriteCaption(ctx context.Context, tenantID string, req *WriteCaptionRequest) (string, error)

	// ResearchHashtags suggests hashtags grouped by expected reach
	ResearchHashtags(ctx context.Context, tenantID, keyword string) (*HashtagResearch, error)

	// RepurposeContent rewrites content for another platform
	RepurposeContent(ctx context.Context, tenantID string, req *RepurposeRequest) (string, error)

	// Enabled reports whether a provider API key is configured
	Enabled() bool
}

// GenerateIdeasRequest carries the idea generation parameters
type GenerateIdeasRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Platform    string `json:"platform" binding:"required"`
	Tone        string `json:"tone,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// WriteCaptionRequest carries the caption drafting parameters
type WriteCaptionRequest struct {
	Description string `json:"description" binding:"required"`
	Platform    string `json:"platform,omitempty"`
}

// RepurposeRequest carries the content repurposing parameters
type RepurposeRequest struct {
	Content        string `json:"content" binding:"required"`
	TargetPlatform string `json:"target_platform" binding:"required"`
}

// HashtagResearch groups suggested hashtags by expected reach
type HashtagResearch struct {
	HighReach   []string `json:"high_reach"`
	MediumReach []string `json:"medium_reach"`
	LowReach    []string `json:"low_reach"`
}

const providerName = "gemini"

type aiStudioService struct {
	client *genai.Client
	ideas  repository.IdeaRepository
	logger *logrus.Entry
}

// NewAIStudioService creates a new AI studio service
func NewAIStudioService(client *genai.Client, ideas repository.IdeaRepository, logger *logrus.Logger) AIStudioService {
	return &aiStudioService{
		client: client,
		ideas:  ideas,
		logger: logger.WithField("component", "ai_studio_service"),
	}
}

func (s *aiStudioService) Enabled() bool {
	return s.client.Enabled()
}

func (s *aiStudioService) GenerateIdeas(ctx context.Context, tenantID string, req *GenerateIdeasRequest) ([]models.AIContentIdea, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, NewValidationError("topic", "topic must not be empty", nil)
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = models.IdeaTypePost
	}
	if !models.ValidIdeaType(contentType) {
		return nil, NewValidationError("content_type", fmt.Sprintf("unknown idea type %q", contentType),
			[]string{models.IdeaTypePost, models.IdeaTypeHook, models.IdeaTypeCaption, models.IdeaTypeThread, models.IdeaTypeStory})
	}
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	count := req.Count
	if count <= 0 || count > 10 {
		count = 3
	}

	prompt := fmt.Sprintf(
		"Generate %d %s ideas for %s about '%s' with a %s tone. "+
			"Return the response as JSON array of objects with 'title' and 'content' keys. "+
			"Do not include markdown code blocks.",
		count, contentType, req.Platform, req.Topic, tone)

	text, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, NewProviderError(providerName, err.Error())
	}

	var parsed []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(genai.StripCodeFences(text)), &parsed); err != nil {
		s.logger.WithError(err).Warn("Provider returned unparseable idea list")
		return nil, NewProviderError(providerName, "response was not a valid idea list")
	}

	modelUsed := s.client.Model()
	ideas := make([]models.AIContentIdea, 0, len(parsed))
	for _, p := range parsed {
		title := p.Title
		if title == "" {
			title = "Untitled"
		}
		ideas = append(ideas, models.AIContentIdea{
			Platform:  &req.Platform,
			IdeaType:  contentType,
			Title:     title,
			Content:   p.Content,
			Tone:      &tone,
			ModelUsed: &modelUsed,
		})
	}

	saved, err := s.ideas.CreateBatch(ctx, tenantID, ideas)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"count":     len(saved),
		"platform":  req.Platform,
	}).Info("Generated content ideas")
	return saved, nil
}

func (s *aiStudioService) WriteCaption(ctx context.Context, tenantID string, req *WriteCaptionRequest) (string, error) {
	if strings.TrimSpace(req.Description) == "" {
		return "", NewValidationError("description", "description must not be empty", nil)
	}
	platform := req.Platform
	if platform == "" {
		platform = "instagram"
	}

	prompt := fmt.Sprintf("Write a %s caption for a post about: %s. Include emojis and hashtags.",
		platform, req.Description)

	text, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return "", NewProviderError(providerName, err.Error())
	}
	return strings.TrimSpace(text), nil
}

func (s *aiStudioService) ResearchHashtags(ctx context.Context, tenantID, keyword string) (*HashtagResearch, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, NewValidationError("keyword", "keyword must not be empty", nil)
	}

	prompt := fmt.Sprintf(
		"Suggest 30 hashtags for '%s' categorized by reach (High, Medium, Low). "+
			"Return as a JSON object with keys 'high_reach', 'medium_reach', 'low_reach', "+
			"each containing an array of strings.", keyword)

	text, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, NewProviderError(providerName, err.Error())
	}

	var research HashtagResearch
	if err := json.Unmarshal([]byte(genai.StripCodeFences(text)), &research); err != nil {
		s.logger.WithError(err).Warn("Provider returned unparseable hashtag research")
		return nil, NewProviderError(providerName, "response was not valid hashtag research")
	}
	return &research, nil
}

func (s *aiStudioService) RepurposeContent(ctx context.Context, tenantID string, req *RepurposeRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", NewValidationError("content", "content must not be empty", nil)
	}

	prompt := fmt.Sprintf(
		"Repurpose the following content for %s. Make it native to the platform style.\n\nContent:\n%s",
		req.TargetPlatform, req.Content)

	text, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return "", NewProviderError(providerName, err.Error())
	}
	return strings.TrimSpace(text), nil
}
