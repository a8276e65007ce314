package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 10 {
		t.Fatalf("ParseDate = %v", d)
	}
	if _, err := ParseDate("10/01/2024"); err == nil {
		t.Fatalf("expected error for non-ISO input")
	}
	if _, err := ParseDate("2024-13-40"); err == nil {
		t.Fatalf("expected error for impossible date")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 5)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-03-05"` {
		t.Fatalf("marshal = %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip = %v, want %v", back, d)
	}
}

func TestDaysUntilAndAddDays(t *testing.T) {
	base := NewDate(2024, time.January, 10)
	if got := base.AddDays(21); !got.Equal(NewDate(2024, time.January, 31)) {
		t.Fatalf("AddDays(21) = %v", got)
	}
	if got := base.DaysUntil(NewDate(2024, time.February, 1)); got != 22 {
		t.Fatalf("DaysUntil = %d", got)
	}
	if got := base.DaysUntil(NewDate(2024, time.January, 8)); got != -2 {
		t.Fatalf("DaysUntil backwards = %d", got)
	}
}

func TestRelativeDue(t *testing.T) {
	today := NewDate(2024, time.January, 10)
	cases := []struct {
		due  *Date
		want string
	}{
		{nil, "-"},
		{datePtr(NewDate(2024, time.January, 10)), "today"},
		{datePtr(NewDate(2024, time.January, 11)), "tomorrow"},
		{datePtr(NewDate(2024, time.January, 15)), "in 5d"},
		{datePtr(NewDate(2024, time.January, 7)), "3d late"},
	}
	for _, tc := range cases {
		if got := RelativeDue(tc.due, today); got != tc.want {
			t.Fatalf("RelativeDue(%v) = %q, want %q", tc.due, got, tc.want)
		}
	}
}

func datePtr(d Date) *Date { return &d }
