package models

import "time"

// DashboardSummary aggregates tenant-wide content activity for the
// dashboard endpoint.
type DashboardSummary struct {
	TenantID          string       `json:"tenant_id"`
	ConnectedAccounts int64        `json:"connected_accounts"`
	TotalAccounts     int64        `json:"total_accounts"`
	TotalPosts        int64        `json:"total_posts"`
	ScheduledPosts    int64        `json:"scheduled_posts"`
	PublishedPosts    int64        `json:"published_posts"`
	DraftPosts        int64        `json:"draft_posts"`
	FailedPosts       int64        `json:"failed_posts"`
	TotalFollowers    int64        `json:"total_followers"`
	TotalIdeas        int64        `json:"total_ideas"`
	UsedIdeas         int64        `json:"used_ideas"`
	HashtagGroups     int64        `json:"hashtag_groups"`
	CalendarEntries   int64        `json:"calendar_entries"`
	AudienceSnapshots int64        `json:"audience_snapshots"`
	PostMetrics       int64        `json:"post_metrics"`
	Totals            MetricTotals `json:"metric_totals"`
	GeneratedAt       time.Time    `json:"generated_at"`
}

// MetricTotals holds summed engagement figures over a tenant's owned
// post metrics.
type MetricTotals struct {
	Likes             int64   `json:"likes"`
	Comments          int64   `json:"comments"`
	Shares            int64   `json:"shares"`
	Impressions       int64   `json:"impressions"`
	Reach             int64   `json:"reach"`
	Clicks            int64   `json:"clicks"`
	Engagement        int64   `json:"engagement"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

// MetricSeriesPoint is one recorded metric row flattened for charting.
type MetricSeriesPoint struct {
	PostID         int64     `json:"post_id"`
	AccountID      int64     `json:"account_id"`
	Platform       string    `json:"platform"`
	Likes          int       `json:"likes"`
	Comments       int       `json:"comments"`
	Shares         int       `json:"shares"`
	Impressions    int       `json:"impressions"`
	Reach          int       `json:"reach"`
	Clicks         int       `json:"clicks"`
	EngagementRate float64   `json:"engagement_rate"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// TopPost pairs a post with its metric for ranked listings.
type TopPost struct {
	PostID         int64      `json:"post_id"`
	AccountID      int64      `json:"account_id"`
	Platform       string     `json:"platform"`
	Content        string     `json:"content"`
	PostType       string     `json:"post_type"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Likes          int        `json:"likes"`
	Comments       int        `json:"comments"`
	Shares         int        `json:"shares"`
	Impressions    int        `json:"impressions"`
	EngagementRate float64    `json:"engagement_rate"`
	RecordedAt     time.Time  `json:"recorded_at"`
}

// AudienceGrowthPoint is one snapshot row in a per-account growth
// series.
type AudienceGrowthPoint struct {
	AccountID      int64     `json:"account_id"`
	Platform       string    `json:"platform"`
	Followers      int       `json:"followers"`
	Following      int       `json:"following"`
	EngagementRate float64   `json:"engagement_rate"`
	SnapshotDate   time.Time `json:"snapshot_date"`
}
