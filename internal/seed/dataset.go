// Package seed builds the demo dataset installed for a new tenant.
package seed

import (
	"fmt"
	"time"

	"github.com/socialpro-hub/content-service/internal/models"
)

// AccountSeed is one demo account plus its dependent records.
type AccountSeed struct {
	Account   models.SocialAccount
	Snapshots []models.AudienceSnapshot
	Posts     []PostSeed
}

// PostSeed pairs a demo post with its optional metric.
type PostSeed struct {
	Post   models.Post
	Metric *models.PostMetric
}

// Dataset is the full demo content for one tenant.
type Dataset struct {
	Accounts      []AccountSeed
	HashtagGroups []models.HashtagGroup
	Calendar      []models.ContentCalendarEntry
	Ideas         []models.AIContentIdea
}

// PostCount returns the number of seeded posts across all accounts.
func (d *Dataset) PostCount() int {
	n := 0
	for _, a := range d.Accounts {
		n += len(a.Posts)
	}
	return n
}

var peakHours = []string{"09:00", "12:00", "17:00", "20:00"}

func strptr(s string) *string { return &s }

// BuildDataset assembles the demo dataset relative to now. Snapshot series
// cover the trailing 12 calendar months with linear follower growth.
func BuildDataset(now time.Time) (*Dataset, error) {
	peakJSON, err := models.JSONStringList(peakHours)
	if err != nil {
		return nil, fmt.Errorf("failed to encode peak hours: %w", err)
	}

	twitter := AccountSeed{
		Account: models.SocialAccount{
			Platform:       "twitter",
			AccountName:    "@acmebrand",
			FollowersCount: 12400,
			FollowingCount: 890,
			Status:         models.AccountStatusConnected,
			AvatarURL:      strptr("https://ui-avatars.com/api/?name=AB&background=1da1f2&color=fff"),
		},
	}
	instagram := AccountSeed{
		Account: models.SocialAccount{
			Platform:       "instagram",
			AccountName:    "@acme.official",
			FollowersCount: 28700,
			FollowingCount: 1240,
			Status:         models.AccountStatusConnected,
			AvatarURL:      strptr("https://ui-avatars.com/api/?name=AO&background=e4405f&color=fff"),
		},
	}

	// 12 monthly snapshots ending at the start of the current month.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		snapshotDate := monthStart.AddDate(0, i-11, 0)
		frac := float64(i) / 11

		twitter.Snapshots = append(twitter.Snapshots, models.AudienceSnapshot{
			SnapshotDate:   snapshotDate,
			Followers:      int(8200 + (12400-8200)*frac),
			Following:      890 + i*5,
			EngagementRate: round2(2.1 + (3.8-2.1)*frac),
			TopPostType:    strptr(models.PostTypeText),
			AudienceGrowth: 2.5,
			PeakHours:      peakJSON,
		})
		instagram.Snapshots = append(instagram.Snapshots, models.AudienceSnapshot{
			SnapshotDate:   snapshotDate,
			Followers:      int(15600 + (28700-15600)*frac),
			Following:      1240 + i*10,
			EngagementRate: round2(3.4 + (5.2-3.4)*frac),
			TopPostType:    strptr(models.PostTypeImage),
			AudienceGrowth: 3.8,
			PeakHours:      peakJSON,
		})
	}

	collectionMedia, err := models.JSONStringList([]string{
		"https://placehold.co/600x400/e4405f/ffffff?text=New+Collection",
	})
	if err != nil {
		return nil, err
	}
	tipsMedia, err := models.JSONStringList([]string{
		"https://placehold.co/600x400/e4405f/ffffff?text=Tip+1",
		"https://placehold.co/600x400/e4405f/ffffff?text=Tip+2",
	})
	if err != nil {
		return nil, err
	}

	twitter.Posts = []PostSeed{
		{
			Post: models.Post{
				Content:     "Excited to announce our new product line!",
				PostType:    models.PostTypeText,
				Status:      models.PostStatusPublished,
				PublishedAt: timeptr(now.AddDate(0, 0, -5)),
			},
			Metric: &models.PostMetric{
				Likes: 340, Comments: 45, Shares: 120,
				Impressions: 15200, Reach: 14000, Clicks: 200,
				EngagementRate: 3.8,
			},
		},
		{
			Post: models.Post{
				Content:     "Behind the scenes at our design studio",
				PostType:    models.PostTypeText,
				Status:      models.PostStatusPublished,
				PublishedAt: timeptr(now.AddDate(0, 0, -2)),
			},
			Metric: &models.PostMetric{
				Likes: 210, Comments: 32, Shares: 65,
				Impressions: 8900, Reach: 8000, Clicks: 150,
				EngagementRate: 3.4,
			},
		},
		{
			Post: models.Post{
				Content:     "Big announcement coming next week! Stay tuned",
				PostType:    models.PostTypeText,
				Status:      models.PostStatusScheduled,
				ScheduledAt: timeptr(now.AddDate(0, 0, 3)),
			},
		},
		{
			Post: models.Post{
				Content:  "Thread: Why we're doubling down on sustainability in 2026",
				PostType: models.PostTypeText,
				Status:   models.PostStatusDraft,
			},
		},
	}

	instagram.Posts = []PostSeed{
		{
			Post: models.Post{
				Content:     "New collection dropping Friday",
				PostType:    models.PostTypeImage,
				Status:      models.PostStatusPublished,
				PublishedAt: timeptr(now.AddDate(0, 0, -4)),
				MediaURLs:   collectionMedia,
			},
			Metric: &models.PostMetric{
				Likes: 890, Comments: 124, Shares: 56,
				Impressions: 32100, Reach: 28000, Clicks: 500,
				EngagementRate: 4.1,
			},
		},
		{
			Post: models.Post{
				Content:     "5 tips for sustainable living",
				PostType:    models.PostTypeCarousel,
				Status:      models.PostStatusPublished,
				PublishedAt: timeptr(now.AddDate(0, 0, -1)),
				MediaURLs:   tipsMedia,
			},
			Metric: &models.PostMetric{
				Likes: 1240, Comments: 203, Shares: 312,
				Impressions: 45600, Reach: 40000, Clicks: 800,
				EngagementRate: 4.8,
			},
		},
		{
			Post: models.Post{
				Content:     "Quick tutorial: 3 ways to style our bestseller",
				PostType:    models.PostTypeVideo,
				Status:      models.PostStatusScheduled,
				ScheduledAt: timeptr(now.AddDate(0, 0, 5)),
			},
		},
		{
			Post: models.Post{
				Content:  "Poll: Which color should we launch next?",
				PostType: models.PostTypeStory,
				Status:   models.PostStatusDraft,
			},
		},
	}

	groups, err := buildHashtagGroups()
	if err != nil {
		return nil, err
	}

	dataset := &Dataset{
		Accounts:      []AccountSeed{twitter, instagram},
		HashtagGroups: groups,
		Calendar:      buildCalendar(monthStart),
		Ideas:         buildIdeas(),
	}
	return dataset, nil
}

func buildHashtagGroups() ([]models.HashtagGroup, error) {
	specs := []struct {
		name     string
		category string
		tags     []string
		avgReach int
	}{
		{"Brand Core", "branded", []string{"#AcmeBrand", "#AcmeLife", "#BuiltByAcme", "#AcmeStyle"}, 5200},
		{"Industry Trending", "trending", []string{"#Sustainability", "#EcoFriendly", "#GreenBusiness", "#CircularEconomy", "#NetZero"}, 45000},
		{"Engagement Boosters", "engagement", []string{"#MondayMotivation", "#TipTuesday", "#ThrowbackThursday", "#FeatureFriday", "#WeekendVibes"}, 120000},
	}

	groups := make([]models.HashtagGroup, 0, len(specs))
	for _, spec := range specs {
		raw, err := models.JSONStringList(spec.tags)
		if err != nil {
			return nil, err
		}
		category := spec.category
		groups = append(groups, models.HashtagGroup{
			Name:     spec.name,
			Category: &category,
			Hashtags: raw,
			AvgReach: spec.avgReach,
		})
	}
	return groups, nil
}

func buildCalendar(monthStart time.Time) []models.ContentCalendarEntry {
	specs := []struct {
		title    string
		category string
		color    string
	}{
		{"Product Launch Post", "announcement", "#ef4444"},
		{"Customer Spotlight", "user_generated", "#6366f1"},
		{"Industry Tips Thread", "educational", "#10b981"},
		{"Flash Sale Promo", "promotional", "#f59e0b"},
		{"Team Photo Friday", "behind_scenes", "#8b5cf6"},
	}

	// Days 3, 8, 13, 18, 23 are valid in every month.
	entries := make([]models.ContentCalendarEntry, 0, len(specs))
	for i, spec := range specs {
		entries = append(entries, models.ContentCalendarEntry{
			Title:     spec.title,
			Category:  spec.category,
			Color:     spec.color,
			EntryDate: monthStart.AddDate(0, 0, 2+i*5),
		})
	}
	return entries
}

func buildIdeas() []models.AIContentIdea {
	return []models.AIContentIdea{
		{
			IdeaType: models.IdeaTypeHook,
			Platform: strptr("twitter"),
			Title:    "Contrarian Industry Take",
			Content:  "Everyone says X about sustainability. Here's why they're wrong (and what the data actually shows)...",
			Tone:     strptr("professional"),
		},
		{
			IdeaType: models.IdeaTypeCaption,
			Platform: strptr("instagram"),
			Title:    "Product Feature Spotlight",
			Content:  "The little details matter. Swipe to see the 3 features our customers love most about [Product]. Which one's your favorite? Drop a comment below 👇",
			Tone:     strptr("casual"),
		},
		{
			IdeaType: models.IdeaTypeThread,
			Platform: strptr("twitter"),
			Title:    "Behind the Numbers",
			Content:  "We grew 40% this quarter. But the vanity metrics aren't the real story. Here's what actually moved the needle (thread) 🧵",
			Tone:     strptr("inspirational"),
		},
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func timeptr(t time.Time) *time.Time { return &t }
