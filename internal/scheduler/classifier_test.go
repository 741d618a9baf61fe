package scheduler

import (
	"strings"
	"testing"
)

func TestClassifyDeadlineReturnsNothingOutsideTable(t *testing.T) {
	for _, days := range []int{-10, -2, 2, 4, 5, 6, 8, 30} {
		for hour := 0; hour < 24; hour++ {
			if msg, ok := ClassifyDeadline(days, hour, "ship the album"); ok {
				t.Errorf("daysUntil=%d hour=%d: expected no message, got %q", days, hour, msg)
			}
		}
	}
}

func TestClassifyDeadlineDueTodayVariesByHour(t *testing.T) {
	seen := make(map[string]int)
	for _, hour := range []int{9, 14, 20} {
		msg, ok := ClassifyDeadline(0, hour, "ship the album")
		if !ok || msg == "" {
			t.Fatalf("hour %d: expected a due-today message", hour)
		}
		if !strings.Contains(msg, "ship the album") {
			t.Errorf("hour %d: message does not mention the goal: %q", hour, msg)
		}
		seen[msg] = hour
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct due-today messages, got %d", len(seen))
	}
}

func TestClassifyDeadlineDueTomorrowVariesByHour(t *testing.T) {
	seen := make(map[string]struct{})
	for _, hour := range []int{9, 14, 20} {
		msg, ok := ClassifyDeadline(1, hour, "finish chapter")
		if !ok {
			t.Fatalf("hour %d: expected a due-tomorrow message", hour)
		}
		seen[msg] = struct{}{}
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct due-tomorrow messages, got %d", len(seen))
	}
}

func TestClassifyDeadlineOnlyFiresAtNineForLongHorizons(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{3, "Three days left"},
		{7, "One week until"},
		{-1, "now overdue"},
	}
	for _, tc := range cases {
		msg, ok := ClassifyDeadline(tc.days, 9, "run a marathon")
		if !ok {
			t.Fatalf("daysUntil=%d hour=9: expected a message", tc.days)
		}
		if !strings.Contains(msg, tc.want) {
			t.Errorf("daysUntil=%d: expected %q in %q", tc.days, tc.want, msg)
		}

		for _, hour := range []int{8, 10, 14, 20} {
			if _, ok := ClassifyDeadline(tc.days, hour, "run a marathon"); ok {
				t.Errorf("daysUntil=%d hour=%d: expected no message", tc.days, hour)
			}
		}
	}
}

func TestClassifyDeadlineOverdueFiresOnlyOnce(t *testing.T) {
	// Day -1 is the single overdue reminder; older overdues stay quiet.
	if _, ok := ClassifyDeadline(-1, 9, "goal"); !ok {
		t.Error("expected overdue message at daysUntil=-1 hour=9")
	}
	for _, days := range []int{-2, -3, -7, -30} {
		if _, ok := ClassifyDeadline(days, 9, "goal"); ok {
			t.Errorf("daysUntil=%d: expected no repeat overdue nag", days)
		}
	}
}
