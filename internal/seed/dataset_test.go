package seed

import (
	"testing"
	"time"

	"github.com/socialpro-hub/content-service/internal/models"
)

func TestBuildDataset_Shape(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	ds, err := BuildDataset(now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(ds.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(ds.Accounts))
	}
	if ds.PostCount() != 8 {
		t.Errorf("expected 8 posts, got %d", ds.PostCount())
	}
	if len(ds.HashtagGroups) != 3 {
		t.Errorf("expected 3 hashtag groups, got %d", len(ds.HashtagGroups))
	}
	if len(ds.Calendar) != 5 {
		t.Errorf("expected 5 calendar entries, got %d", len(ds.Calendar))
	}
	if len(ds.Ideas) != 3 {
		t.Errorf("expected 3 ideas, got %d", len(ds.Ideas))
	}

	metrics := 0
	for _, account := range ds.Accounts {
		if len(account.Snapshots) != 12 {
			t.Errorf("account %s: expected 12 snapshots, got %d", account.Account.AccountName, len(account.Snapshots))
		}
		for _, p := range account.Posts {
			if p.Metric != nil {
				metrics++
				if p.Post.Status != models.PostStatusPublished {
					t.Errorf("only published posts carry metrics, got status %q", p.Post.Status)
				}
			}
		}
	}
	if metrics != 4 {
		t.Errorf("expected 4 metrics, got %d", metrics)
	}
}

func TestBuildDataset_SnapshotGrowth(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	ds, err := BuildDataset(now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	twitter := ds.Accounts[0]
	first := twitter.Snapshots[0]
	last := twitter.Snapshots[11]

	if first.Followers != 8200 {
		t.Errorf("expected oldest twitter snapshot at 8200 followers, got %d", first.Followers)
	}
	if last.Followers != twitter.Account.FollowersCount {
		t.Errorf("latest snapshot followers %d should match account count %d", last.Followers, twitter.Account.FollowersCount)
	}

	// The series must end at the start of the current month and step monthly.
	monthStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !last.SnapshotDate.Equal(monthStart) {
		t.Errorf("expected last snapshot at %v, got %v", monthStart, last.SnapshotDate)
	}
	if !first.SnapshotDate.Equal(monthStart.AddDate(0, -11, 0)) {
		t.Errorf("expected first snapshot 11 months back, got %v", first.SnapshotDate)
	}

	for i := 1; i < len(twitter.Snapshots); i++ {
		if twitter.Snapshots[i].Followers < twitter.Snapshots[i-1].Followers {
			t.Errorf("follower series must be non-decreasing, dropped at index %d", i)
		}
	}
}

func TestBuildDataset_ScheduledPostsInFuture(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	ds, err := BuildDataset(now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, account := range ds.Accounts {
		for _, p := range account.Posts {
			switch p.Post.Status {
			case models.PostStatusScheduled:
				if p.Post.ScheduledAt == nil || !p.Post.ScheduledAt.After(now) {
					t.Errorf("scheduled post %q must have a future scheduled_at", p.Post.Content)
				}
			case models.PostStatusPublished:
				if p.Post.PublishedAt == nil || p.Post.PublishedAt.After(now) {
					t.Errorf("published post %q must have a past published_at", p.Post.Content)
				}
			}
		}
	}
}

func TestBuildDataset_CalendarDaysValidInShortMonths(t *testing.T) {
	// February of a non-leap year is the tightest month.
	now := time.Date(2027, time.February, 10, 0, 0, 0, 0, time.UTC)
	ds, err := BuildDataset(now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, entry := range ds.Calendar {
		if entry.EntryDate.Month() != time.February {
			t.Errorf("entry %q spilled out of the seed month: %v", entry.Title, entry.EntryDate)
		}
		if entry.Color == "" || entry.Category == "" {
			t.Errorf("entry %q missing color or category", entry.Title)
		}
	}
}
