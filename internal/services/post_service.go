package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/socialpro-hub/content-service/internal/events"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
)

// PostService defines post lifecycle operations on top of the repository
type PostService interface {
	// List returns the tenant's posts, newest activity first
	List(ctx context.Context, tenantID string, filters repository.PostFilters, limit int) ([]models.Post, error)

	// Get returns one owned post
	Get(ctx context.Context, tenantID string, id int64) (*models.Post, error)

	// Create validates and stores a new post
	Create(ctx context.Context, tenantID string, req *CreatePostRequest) (*models.Post, error)

	// Update applies a partial update to an owned post
	Update(ctx context.Context, tenantID string, id int64, req *UpdatePostRequest) (*models.Post, error)

	// Delete removes an owned post and its metric
	Delete(ctx context.Context, tenantID string, id int64) error

	// Schedule moves a post into the scheduled state at a future time
	Schedule(ctx context.Context, tenantID string, id int64, at time.Time) (*models.Post, error)

	// Publish marks a post published now
	Publish(ctx context.Context, tenantID string, id int64) (*models.Post, error)

	// ListUpcoming returns scheduled posts inside a window
	ListUpcoming(ctx context.Context, tenantID string, days int) ([]models.Post, error)
}

// CreatePostRequest carries the fields accepted when creating a post
type CreatePostRequest struct {
	AccountID   int64      `json:"account_id" binding:"required"`
	Content     string     `json:"content" binding:"required"`
	MediaURLs   []string   `json:"media_urls,omitempty"`
	PostType    string     `json:"post_type" binding:"required"`
	Status      string     `json:"status,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Hashtags    *string    `json:"hashtags,omitempty"`
}

// UpdatePostRequest carries the optional fields of a partial post update.
// A present scheduled_at with a null value clears the schedule.
type UpdatePostRequest struct {
	AccountID      *int64     `json:"account_id,omitempty"`
	Content        *string    `json:"content,omitempty"`
	MediaURLs      *[]string  `json:"media_urls,omitempty"`
	PostType       *string    `json:"post_type,omitempty"`
	Status         *string    `json:"status,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	SetScheduledAt bool       `json:"-"`
	PlatformPostID *string    `json:"platform_post_id,omitempty"`
	Hashtags       *string    `json:"hashtags,omitempty"`
}

type postService struct {
	posts     repository.PostRepository
	publisher events.Publisher
	logger    *logrus.Entry
}

// NewPostService creates a new post service
func NewPostService(posts repository.PostRepository, publisher events.Publisher, logger *logrus.Logger) PostService {
	return &postService{
		posts:     posts,
		publisher: publisher,
		logger:    logger.WithField("component", "post_service"),
	}
}

func (s *postService) List(ctx context.Context, tenantID string, filters repository.PostFilters, limit int) ([]models.Post, error) {
	return s.posts.List(ctx, tenantID, filters, limit)
}

func (s *postService) Get(ctx context.Context, tenantID string, id int64) (*models.Post, error) {
	return s.posts.Get(ctx, tenantID, id)
}

func (s *postService) Create(ctx context.Context, tenantID string, req *CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, NewValidationError("content", "content must not be empty", nil)
	}
	if !models.ValidPostType(req.PostType) {
		return nil, NewValidationError("post_type", fmt.Sprintf("unknown post type %q", req.PostType),
			[]string{models.PostTypeText, models.PostTypeImage, models.PostTypeVideo, models.PostTypeCarousel, models.PostTypeStory})
	}

	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(status) {
		return nil, NewValidationError("status", fmt.Sprintf("unknown status %q", status),
			[]string{models.PostStatusDraft, models.PostStatusScheduled, models.PostStatusPublished, models.PostStatusFailed})
	}
	if status == models.PostStatusScheduled {
		if req.ScheduledAt == nil {
			return nil, NewValidationError("scheduled_at", "scheduled posts require scheduled_at", nil)
		}
		if !req.ScheduledAt.After(time.Now()) {
			return nil, NewValidationError("scheduled_at", "scheduled_at must be in the future", nil)
		}
	}

	post := &models.Post{
		AccountID:   req.AccountID,
		Content:     req.Content,
		PostType:    req.PostType,
		Status:      status,
		ScheduledAt: req.ScheduledAt,
		Hashtags:    req.Hashtags,
	}
	if len(req.MediaURLs) > 0 {
		raw, err := models.JSONStringList(req.MediaURLs)
		if err != nil {
			return nil, NewValidationError("media_urls", "media_urls must be a list of strings", nil)
		}
		post.MediaURLs = raw
	}
	if status == models.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, tenantID, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, tenantID string, id int64, req *UpdatePostRequest) (*models.Post, error) {
	patch := repository.PostPatch{
		AccountID:      req.AccountID,
		Content:        req.Content,
		PlatformPostID: req.PlatformPostID,
		Hashtags:       req.Hashtags,
	}

	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, NewValidationError("content", "content must not be empty", nil)
	}
	if req.PostType != nil {
		if !models.ValidPostType(*req.PostType) {
			return nil, NewValidationError("post_type", fmt.Sprintf("unknown post type %q", *req.PostType), nil)
		}
		patch.PostType = req.PostType
	}
	if req.Status != nil {
		if !models.ValidPostStatus(*req.Status) {
			return nil, NewValidationError("status", fmt.Sprintf("unknown status %q", *req.Status), nil)
		}
		patch.Status = req.Status
		if *req.Status == models.PostStatusPublished {
			now := time.Now().UTC()
			patch.PublishedAt = &now
			patch.SetPublishedAt = true
		}
	}
	if req.SetScheduledAt {
		patch.ScheduledAt = req.ScheduledAt
		patch.SetScheduledAt = true
	}
	if req.MediaURLs != nil {
		patch.MediaURLs = req.MediaURLs
	}

	return s.posts.Update(ctx, tenantID, id, patch)
}

func (s *postService) Delete(ctx context.Context, tenantID string, id int64) error {
	return s.posts.Delete(ctx, tenantID, id)
}

func (s *postService) Schedule(ctx context.Context, tenantID string, id int64, at time.Time) (*models.Post, error) {
	if !at.After(time.Now()) {
		return nil, NewValidationError("scheduled_at", "scheduled_at must be in the future", nil)
	}

	status := models.PostStatusScheduled
	post, err := s.posts.Update(ctx, tenantID, id, repository.PostPatch{
		Status:         &status,
		ScheduledAt:    &at,
		SetScheduledAt: true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id":    tenantID,
		"post_id":      id,
		"scheduled_at": at,
	}).Info("Post scheduled")
	return post, nil
}

func (s *postService) Publish(ctx context.Context, tenantID string, id int64) (*models.Post, error) {
	current, err := s.posts.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if current.Status == models.PostStatusPublished {
		return nil, NewConflictError("post", "post is already published")
	}

	now := time.Now().UTC()
	status := models.PostStatusPublished
	post, err := s.posts.Update(ctx, tenantID, id, repository.PostPatch{
		Status:         &status,
		PublishedAt:    &now,
		SetPublishedAt: true,
		ScheduledAt:    nil,
		SetScheduledAt: true,
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishPostPublished(ctx, tenantID, post); err != nil {
			s.logger.WithError(err).Warn("Failed to publish post.published event")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"post_id":   id,
	}).Info("Post published")
	return post, nil
}

func (s *postService) ListUpcoming(ctx context.Context, tenantID string, days int) ([]models.Post, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}
	from := time.Now()
	to := from.AddDate(0, 0, days)
	return s.posts.ListUpcoming(ctx, tenantID, from, to)
}
