package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/socialpro-hub/content-service/internal/models"
)

// Event subjects
const (
	SubjectPostPublished  = "content.post.published"
	SubjectAccountDeleted = "content.account.deleted"
	SubjectTenantSeeded   = "content.tenant.seeded"
)

// PostPublishedEvent is published when a post transitions to published
type PostPublishedEvent struct {
	EventType   string     `json:"event_type"`
	TenantID    string     `json:"tenant_id"`
	PostID      int64      `json:"post_id"`
	AccountID   int64      `json:"account_id"`
	PostType    string     `json:"post_type"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// AccountDeletedEvent is published after an account and its dependents are removed
type AccountDeletedEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	AccountID int64     `json:"account_id"`
	Platform  string    `json:"platform"`
	Timestamp time.Time `json:"timestamp"`
}

// TenantSeededEvent is published after demo content is created for a tenant
type TenantSeededEvent struct {
	EventType string    `json:"event_type"`
	TenantID  string    `json:"tenant_id"`
	Accounts  int       `json:"accounts"`
	Posts     int       `json:"posts"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits content lifecycle events. A nil implementation-free
// publisher is valid; callers treat publish failures as non-fatal.
type Publisher interface {
	PublishPostPublished(ctx context.Context, tenantID string, post *models.Post) error
	PublishAccountDeleted(ctx context.Context, tenantID string, account *models.SocialAccount) error
	PublishTenantSeeded(ctx context.Context, tenantID string, accounts, posts int) error
	IsConnected() bool
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the content events stream exists
func NewPublisher(url string, logger *logrus.Logger) (Publisher, error) {
	entry := logger.WithField("component", "events.publisher")

	opts := []nats.Option{
		nats.Name("content-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			entry.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			entry.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// LimitsPolicy so multiple downstream consumers can read the stream
	_, err = js.AddStream(&nats.StreamConfig{
		Name:        "CONTENT_EVENTS",
		Description: "Stream for content lifecycle events",
		Subjects:    []string{"content.>"},
		Storage:     nats.FileStorage,
		Retention:   nats.LimitsPolicy,
		MaxAge:      24 * time.Hour * 7,
		MaxMsgs:     100000,
		Discard:     nats.DiscardOld,
	})
	if err != nil && err != nats.ErrStreamNameAlreadyInUse {
		entry.WithError(err).Warn("Could not create CONTENT_EVENTS stream (may already exist)")
	}

	entry.WithField("url", url).Info("NATS events publisher initialized")

	return &natsPublisher{
		conn:   conn,
		js:     js,
		logger: entry,
	}, nil
}

func (p *natsPublisher) publish(ctx context.Context, subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	var ack *nats.PubAck
	maxRetries := 3
	for attempt := 1; attempt <= maxRetries; attempt++ {
		ack, err = p.js.Publish(subject, data)
		if err == nil {
			break
		}
		p.logger.WithError(err).Warnf("Attempt %d/%d: failed to publish %s", attempt, maxRetries, subject)
		if attempt < maxRetries {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while retrying publish: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to publish event after %d attempts: %w", maxRetries, err)
	}

	p.logger.WithFields(logrus.Fields{
		"subject":  subject,
		"sequence": ack.Sequence,
	}).Debug("Event published")
	return nil
}

func (p *natsPublisher) PublishPostPublished(ctx context.Context, tenantID string, post *models.Post) error {
	return p.publish(ctx, SubjectPostPublished, &PostPublishedEvent{
		EventType:   SubjectPostPublished,
		TenantID:    tenantID,
		PostID:      post.ID,
		AccountID:   post.AccountID,
		PostType:    post.PostType,
		PublishedAt: post.PublishedAt,
		Timestamp:   time.Now().UTC(),
	})
}

func (p *natsPublisher) PublishAccountDeleted(ctx context.Context, tenantID string, account *models.SocialAccount) error {
	return p.publish(ctx, SubjectAccountDeleted, &AccountDeletedEvent{
		EventType: SubjectAccountDeleted,
		TenantID:  tenantID,
		AccountID: account.ID,
		Platform:  account.Platform,
		Timestamp: time.Now().UTC(),
	})
}

func (p *natsPublisher) PublishTenantSeeded(ctx context.Context, tenantID string, accounts, posts int) error {
	return p.publish(ctx, SubjectTenantSeeded, &TenantSeededEvent{
		EventType: SubjectTenantSeeded,
		TenantID:  tenantID,
		Accounts:  accounts,
		Posts:     posts,
		Timestamp: time.Now().UTC(),
	})
}

func (p *natsPublisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
