package store

import (
	"strconv"
	"strings"

	"strata-cli/internal/model"
)

var weekdayNames = []struct {
	name string
	day  int // days from Monday
}{
	{"monday", 0}, {"tuesday", 1}, {"wednesday", 2}, {"thursday", 3},
	{"friday", 4}, {"saturday", 5}, {"sunday", 6},
	{"mon", 0}, {"tue", 1}, {"wed", 2}, {"thu", 3},
	{"fri", 4}, {"sat", 5}, {"sun", 6},
}

func daysFromMonday(d model.Date) int {
	return (int(d.Weekday()) + 6) % 7
}

// WeekBounds returns the Monday and Sunday of today's ISO week.
func WeekBounds(today model.Date) (model.Date, model.Date) {
	start := today.AddDays(-daysFromMonday(today))
	return start, start.AddDays(6)
}

// ParseDueInput reads a due date from natural language or YYYY-MM-DD.
//
// Supported: today, tomorrow, yesterday; end of week / eow (this week's
// Sunday); end of month / eom; weekend / this weekend (coming Saturday);
// "in Nd", "in Nw", "in Nm" (a month counts as 30 days); weekday names,
// long or three-letter, bare or prefixed with "this" or "next".
func ParseDueInput(input string, today model.Date) (model.Date, bool) {
	s := strings.ToLower(strings.TrimSpace(input))

	switch s {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDays(1), true
	case "yesterday":
		return today.AddDays(-1), true
	case "end of week", "eow":
		_, end := WeekBounds(today)
		return end, true
	case "end of month", "eom":
		firstOfNext := model.NewDate(today.Year(), today.Month(), 1).AddDays(32)
		firstOfNext = model.NewDate(firstOfNext.Year(), firstOfNext.Month(), 1)
		return firstOfNext.AddDays(-1), true
	case "this weekend", "weekend":
		return today.AddDays((6 - daysFromMonday(today)) % 7), true
	}

	if rest, ok := strings.CutPrefix(s, "in "); ok {
		for _, unit := range []struct {
			suffix string
			days   int
		}{{"d", 1}, {"w", 7}, {"m", 30}} {
			nd, ok := strings.CutSuffix(rest, unit.suffix)
			if !ok {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimSpace(nd)); err == nil {
				return today.AddDays(n * unit.days), true
			}
		}
	}

	for _, wd := range weekdayNames {
		ahead := (wd.day + 7 - daysFromMonday(today)) % 7
		switch s {
		case wd.name, "this " + wd.name:
			return today.AddDays(ahead), true
		case "next " + wd.name:
			if ahead == 0 {
				ahead = 7
			} else {
				ahead += 7
			}
			return today.AddDays(ahead), true
		}
	}

	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, false
	}
	return d, true
}

// DueFilter narrows task lists by due date.
type DueFilter string

const (
	DueToday    DueFilter = "today"
	DueThisWeek DueFilter = "this-week"
	DueOverdue  DueFilter = "overdue"
	DueNone     DueFilter = "none"
)

// MatchDue applies a due filter against today.
func MatchDue(filter DueFilter, due *model.Date, today model.Date) bool {
	switch filter {
	case DueToday:
		return due != nil && due.Equal(today)
	case DueThisWeek:
		if due == nil {
			return false
		}
		start, end := WeekBounds(today)
		return !due.Before(start) && !due.After(end)
	case DueOverdue:
		return due != nil && due.Before(today)
	case DueNone:
		return due == nil
	}
	return true
}
