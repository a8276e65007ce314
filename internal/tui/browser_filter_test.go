package tui

import (
	"testing"

	"strata-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(t *testing.T, m browserModel, s string) browserModel {
	t.Helper()
	for _, r := range s {
		mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = mAny.(browserModel)
	}
	return m
}

func TestBrowser_FilterApply(t *testing.T) {
	m := seedBrowser(t)

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = mAny.(browserModel)
	if !m.filterActive {
		t.Fatalf("/ should enter filter mode")
	}
	if m.statusMsg != "Filter mode: Type to search title/tags/project, Enter to apply, Esc to cancel" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}

	m = typeRunes(t, m, "pay")
	if m.filterText != "pay" {
		t.Fatalf("filterText = %q", m.filterText)
	}
	if len(m.filtered) != 1 || m.filtered[0] != 5 {
		t.Fatalf("filtered = %v, want only Payments", m.filtered)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(browserModel)
	if m.filterActive {
		t.Fatalf("enter should leave filter mode")
	}
	if m.statusMsg != "Filter applied: 'pay' (1 tasks)" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}

	// Esc clears an applied filter instead of quitting.
	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(browserModel)
	if cmd != nil {
		t.Fatalf("esc with an active filter should not quit")
	}
	if m.filterText != "" || len(m.filtered) != 2 {
		t.Fatalf("filter should be cleared, text %q filtered %v", m.filterText, m.filtered)
	}
}

func TestBrowser_FilterEscCancels(t *testing.T) {
	m := seedBrowser(t)
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = mAny.(browserModel)
	m = typeRunes(t, m, "plat")
	if len(m.filtered) != 1 {
		t.Fatalf("filtered = %v", m.filtered)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(browserModel)
	if m.filterActive || m.filterText != "" {
		t.Fatalf("esc should drop the filter, active=%v text=%q", m.filterActive, m.filterText)
	}
	if len(m.filtered) != 2 {
		t.Fatalf("filtered = %v, want both products back", m.filtered)
	}
}

func TestBrowser_FilterKeepsSelection(t *testing.T) {
	m := seedBrowser(t)
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = mAny.(browserModel)
	if id, _ := m.cursorTaskID(); id != 5 {
		t.Fatalf("cursor task = %d, want Payments", id)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = mAny.(browserModel)

	// "p" matches both products: the cursor stays on Payments.
	m = typeRunes(t, m, "p")
	if len(m.filtered) != 2 {
		t.Fatalf("filtered = %v", m.filtered)
	}
	if id, _ := m.cursorTaskID(); id != 5 {
		t.Fatalf("cursor task after narrowing = %d, want Payments", id)
	}

	// "pa" drops Platform; the cursor follows Payments to the top row.
	m = typeRunes(t, m, "a")
	if len(m.filtered) != 1 || m.filtered[0] != 5 {
		t.Fatalf("filtered = %v", m.filtered)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestBrowser_ToggleCompletedVisibility(t *testing.T) {
	m := seedBrowser(t)
	m.db.Tasks[4].Status = model.StatusDone
	m.updateFiltered()
	if len(m.filtered) != 1 || m.filtered[0] != 1 {
		t.Fatalf("done tasks should be hidden, filtered = %v", m.filtered)
	}

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = mAny.(browserModel)
	if !m.showCompleted || len(m.filtered) != 2 {
		t.Fatalf("t should reveal done tasks, filtered = %v", m.filtered)
	}
	if m.statusMsg != "Showing all tasks (2 total)" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m = mAny.(browserModel)
	if m.showCompleted || len(m.filtered) != 1 {
		t.Fatalf("t again should hide done tasks, filtered = %v", m.filtered)
	}
	if m.statusMsg != "Hiding completed tasks (1 visible)" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
}

func TestTaskMatchesFilter(t *testing.T) {
	project := "Web Shop"
	task := model.Task{
		Title:   "Wire Stripe webhook",
		Tags:    []string{"backend", "payments"},
		Project: &project,
	}
	cases := []struct {
		needle string
		want   bool
	}{
		{"stripe", true},
		{"payments", true},
		{"web shop", true},
		{"frontend", false},
	}
	for _, tc := range cases {
		if got := taskMatchesFilter(&task, tc.needle); got != tc.want {
			t.Fatalf("taskMatchesFilter(%q) = %v, want %v", tc.needle, got, tc.want)
		}
	}
}
