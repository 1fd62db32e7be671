package repository

import "testing"

func TestClampLimit(t *testing.T) {
	testCases := []struct {
		limit    int
		expected int
	}{
		{0, DefaultListLimit},
		{-5, DefaultListLimit},
		{1, 1},
		{250, 250},
		{MaxListLimit, MaxListLimit},
		{MaxListLimit + 1, MaxListLimit},
		{1000000, MaxListLimit},
	}

	for _, tc := range testCases {
		if got := ClampLimit(tc.limit); got != tc.expected {
			t.Errorf("ClampLimit(%d): expected %d, got %d", tc.limit, tc.expected, got)
		}
	}
}
