package workers

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/events"
	"github.com/socialpro-hub/content-service/internal/models"
)

const (
	// DefaultScanInterval is how often due scheduled posts are checked
	DefaultScanInterval = 1 * time.Minute

	// ScanBatchSize caps how many due posts one pass will publish
	ScanBatchSize = 100
)

// PublishScheduler promotes scheduled posts to published once their
// scheduled time has passed. It runs across all tenants; tenant scoping is
// irrelevant here because each post is updated by its own primary key.
type PublishScheduler struct {
	db        *gorm.DB
	publisher events.Publisher
	interval  time.Duration
	stopChan  chan struct{}
	doneChan  chan struct{}
	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastError error
}

// NewPublishScheduler creates a new publish scheduler
func NewPublishScheduler(db *gorm.DB, publisher events.Publisher, interval time.Duration) *PublishScheduler {
	if interval == 0 {
		interval = DefaultScanInterval
	}

	return &PublishScheduler{
		db:        db,
		publisher: publisher,
		interval:  interval,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
}

// Start begins the scan loop
func (s *PublishScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.run()
	log.Printf("Publish scheduler started with interval: %v", s.interval)
}

// Stop stops the scan loop
func (s *PublishScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	<-s.doneChan
	log.Println("Publish scheduler stopped")
}

// ForceRun triggers an immediate scan
func (s *PublishScheduler) ForceRun() error {
	return s.publishDue()
}

// IsRunning returns whether the scheduler is running
func (s *PublishScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// run is the main scan loop
func (s *PublishScheduler) run() {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if err := s.publishDue(); err != nil {
				log.Printf("Publish scheduler pass failed: %v", err)
			}
		}
	}
}

// publishDue publishes every scheduled post whose time has passed
func (s *PublishScheduler) publishDue() error {
	ctx := context.Background()
	now := time.Now().UTC()

	var due []models.Post
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", models.PostStatusScheduled, now).
		Order("scheduled_at ASC").
		Limit(ScanBatchSize).
		Find(&due).Error

	s.mu.Lock()
	s.lastRun = now
	s.lastError = err
	s.mu.Unlock()

	if err != nil {
		return err
	}

	for i := range due {
		post := &due[i]
		publishedAt := now
		result := s.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ? AND status = ?", post.ID, models.PostStatusScheduled).
			Updates(map[string]interface{}{
				"status":       models.PostStatusPublished,
				"published_at": publishedAt,
				"scheduled_at": nil,
			})
		if result.Error != nil {
			log.Printf("Failed to publish due post %d: %v", post.ID, result.Error)
			continue
		}
		if result.RowsAffected == 0 {
			// Someone else published or deleted it between scan and update
			continue
		}

		post.Status = models.PostStatusPublished
		post.PublishedAt = &publishedAt
		post.ScheduledAt = nil

		if s.publisher != nil {
			if err := s.publisher.PublishPostPublished(ctx, post.TenantID, post); err != nil {
				log.Printf("Failed to publish post.published event for post %d: %v", post.ID, err)
			}
		}
		log.Printf("Published due post %d for tenant %s", post.ID, post.TenantID)
	}

	return nil
}

// SchedulerStatus reports the current state of the scheduler
type SchedulerStatus struct {
	Running   bool      `json:"running"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	Interval  string    `json:"interval"`
}

// Status returns the current status of the scheduler
func (s *PublishScheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SchedulerStatus{
		Running:  s.running,
		Interval: s.interval.String(),
	}

	if !s.lastRun.IsZero() {
		status.LastRun = s.lastRun
	}
	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}

	return status
}
