package services

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/socialpro-hub/content-service/internal/cache"
)

func TestParseDateBound_RFC3339(t *testing.T) {
	got, ok := parseDateBound("2026-03-15T10:30:00Z", false)
	if !ok {
		t.Fatal("expected RFC 3339 timestamp to parse")
	}
	expected := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestParseDateBound_BareDate(t *testing.T) {
	got, ok := parseDateBound("2026-03-15", false)
	if !ok {
		t.Fatal("expected bare date to parse")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("start bound must be midnight, got %v", got)
	}
}

func TestParseDateBound_EndOfDayWidening(t *testing.T) {
	got, ok := parseDateBound("2026-03-15", true)
	if !ok {
		t.Fatal("expected bare date to parse")
	}
	// Inclusive bound: the last instant of March 15th.
	if got.Day() != 15 || got.Hour() != 23 || got.Minute() != 59 {
		t.Errorf("end bound must sit at end of day, got %v", got)
	}

	// An explicit timestamp is never widened.
	exact, ok := parseDateBound("2026-03-15T08:00:00Z", true)
	if !ok {
		t.Fatal("expected RFC 3339 timestamp to parse")
	}
	if exact.Hour() != 8 {
		t.Errorf("explicit timestamps must be taken as-is, got %v", exact)
	}
}

func TestParseDateBound_Malformed(t *testing.T) {
	for _, value := range []string{"", "yesterday", "15-03-2026", "2026/03/15", "2026-13-40"} {
		if _, ok := parseDateBound(value, false); ok {
			t.Errorf("expected %q to be rejected", value)
		}
	}
}

func TestToFilters_IgnoresMalformedDates(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := &analyticsService{
		dashCache: cache.NewDashboardCacheWithoutRedis(),
		logger:    logger.WithField("component", "analytics_service"),
	}

	filters := svc.toFilters(SeriesQuery{StartDate: "not-a-date", EndDate: "2026-03-31"})
	if filters.From != nil {
		t.Error("malformed start_date must be dropped, not errored")
	}
	if filters.To == nil {
		t.Fatal("valid end_date must survive")
	}
	if filters.To.Day() != 31 || filters.To.Hour() != 23 {
		t.Errorf("end_date must widen to end of day, got %v", filters.To)
	}
}
