package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/socialpro-hub/content-service/internal/events"
	"github.com/socialpro-hub/content-service/internal/models"
	"github.com/socialpro-hub/content-service/internal/repository"
	"github.com/socialpro-hub/content-service/internal/seed"
)

// SeedService installs demo content for a tenant
type SeedService interface {
	// SeedTenant creates the demo dataset. It is idempotent: a tenant that
	// already has any social account is left untouched and the call
	// succeeds with AlreadySeeded set.
	SeedTenant(ctx context.Context, tenantID string) (*SeedResult, error)
}

// SeedResult reports what a seed run created
type SeedResult struct {
	TenantID      string `json:"tenant_id"`
	AlreadySeeded bool   `json:"already_seeded,omitempty"`
	Accounts      int    `json:"accounts"`
	Posts         int    `json:"posts"`
	Snapshots     int    `json:"snapshots"`
	HashtagGroups int    `json:"hashtag_groups"`
	Calendar      int    `json:"calendar_entries"`
	Ideas         int    `json:"ideas"`
}

type seedService struct {
	db        *gorm.DB
	publisher events.Publisher
	logger    *logrus.Entry
}

// NewSeedService creates a new seed service
func NewSeedService(db *gorm.DB, publisher events.Publisher, logger *logrus.Logger) SeedService {
	return &seedService{
		db:        db,
		publisher: publisher,
		logger:    logger.WithField("component", "seed_service"),
	}
}

func (s *seedService) SeedTenant(ctx context.Context, tenantID string) (*SeedResult, error) {
	dataset, err := seed.BuildDataset(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	result := &SeedResult{TenantID: tenantID}

	// Serializable so two concurrent seed calls cannot both pass the
	// existence check. Everything is written through the scoped
	// repositories bound to the transaction handle, so the same
	// parent-ownership checks apply as on the API path.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SocialAccount{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			result.AlreadySeeded = true
			return nil
		}

		accounts := repository.NewAccountRepository(tx)
		snapshots := repository.NewSnapshotRepository(tx)
		posts := repository.NewPostRepository(tx)
		metrics := repository.NewMetricRepository(tx)
		groups := repository.NewHashtagRepository(tx)
		calendar := repository.NewCalendarRepository(tx)
		ideas := repository.NewIdeaRepository(tx)

		for _, accountSeed := range dataset.Accounts {
			account := accountSeed.Account
			if err := accounts.Create(ctx, tenantID, &account); err != nil {
				return err
			}
			result.Accounts++

			for _, snapshot := range accountSeed.Snapshots {
				snapshot.AccountID = account.ID
				if err := snapshots.Create(ctx, tenantID, &snapshot); err != nil {
					return err
				}
				result.Snapshots++
			}

			for _, postSeed := range accountSeed.Posts {
				post := postSeed.Post
				post.AccountID = account.ID
				if err := posts.Create(ctx, tenantID, &post); err != nil {
					return err
				}
				result.Posts++

				if postSeed.Metric != nil {
					metric := *postSeed.Metric
					metric.PostID = post.ID
					if err := metrics.Create(ctx, tenantID, &metric); err != nil {
						return err
					}
				}
			}
		}

		for i := range dataset.HashtagGroups {
			if err := groups.Create(ctx, tenantID, &dataset.HashtagGroups[i]); err != nil {
				return err
			}
			result.HashtagGroups++
		}

		for i := range dataset.Calendar {
			if err := calendar.Create(ctx, tenantID, &dataset.Calendar[i]); err != nil {
				return err
			}
			result.Calendar++
		}

		if len(dataset.Ideas) > 0 {
			saved, err := ideas.CreateBatch(ctx, tenantID, dataset.Ideas)
			if err != nil {
				return err
			}
			result.Ideas = len(saved)
		}

		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}

	if result.AlreadySeeded {
		s.logger.WithField("tenant_id", tenantID).Debug("Tenant already seeded, nothing to do")
		return result, nil
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTenantSeeded(ctx, tenantID, result.Accounts, result.Posts); err != nil {
			s.logger.WithError(err).Warn("Failed to publish tenant.seeded event")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"accounts":  result.Accounts,
		"posts":     result.Posts,
	}).Info("Seeded demo content")
	return result, nil
}
