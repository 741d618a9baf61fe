package goalparse

import (
	"testing"
	"time"
)

var parseNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestParseNoDeadline(t *testing.T) {
	goal, deadline := Parse("read more books", parseNow)
	if goal != "read more books" {
		t.Errorf("goal = %q", goal)
	}
	if deadline != nil {
		t.Errorf("expected no deadline, got %v", *deadline)
	}
}

func TestParseTomorrow(t *testing.T) {
	goal, deadline := Parse("finish the report by tomorrow", parseNow)
	if goal != "finish the report" {
		t.Errorf("goal = %q", goal)
	}
	if deadline == nil {
		t.Fatal("expected a deadline")
	}
	want := parseNow.AddDate(0, 0, 1)
	if !deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", deadline, want)
	}
}

func TestParseSlashDateWithYear(t *testing.T) {
	goal, deadline := Parse("launch the site by 4/1/2026", parseNow)
	if goal != "launch the site" {
		t.Errorf("goal = %q", goal)
	}
	if deadline == nil {
		t.Fatal("expected a deadline")
	}
	if deadline.Year() != 2026 || deadline.Month() != time.April || deadline.Day() != 1 {
		t.Errorf("deadline = %v", deadline)
	}
}

func TestParseSlashDateWithoutYear(t *testing.T) {
	cases := []struct {
		in   string
		goal string
	}{
		{"run a 10k before 6/15", "run a 10k"},
		{"submit taxes, deadline 4/15", "submit taxes"},
		{"ship v2 due 5/1", "ship v2"},
		{"clean the garage until 3/20", "clean the garage"},
	}
	for _, tc := range cases {
		goal, deadline := Parse(tc.in, parseNow)
		if goal != tc.goal {
			t.Errorf("%q: goal = %q, want %q", tc.in, goal, tc.goal)
		}
		if deadline == nil {
			t.Errorf("%q: expected a deadline", tc.in)
			continue
		}
		if deadline.Year() != parseNow.Year() {
			t.Errorf("%q: year = %d, want %d", tc.in, deadline.Year(), parseNow.Year())
		}
	}
}

func TestParseKeywordWithoutDateIsStripped(t *testing.T) {
	goal, deadline := Parse("get it done by the weekend", parseNow)
	if deadline != nil {
		t.Errorf("expected no deadline, got %v", *deadline)
	}
	if goal != "get it done the weekend" {
		t.Errorf("goal = %q", goal)
	}
}

func TestParseEmptyInput(t *testing.T) {
	goal, deadline := Parse("", parseNow)
	if goal != "" || deadline != nil {
		t.Errorf("empty input: goal=%q deadline=%v", goal, deadline)
	}
}
