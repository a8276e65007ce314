package tui

import (
	"path/filepath"
	"testing"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// seedBrowser builds a browser over a small saved hierarchy:
// two products, one of them carrying an epic > task > subtask chain.
func seedBrowser(t *testing.T) browserModel {
	t.Helper()
	s := store.Store{Path: filepath.Join(t.TempDir(), "alpha_tasks.json")}
	pid := func(id uint64) *uint64 { return &id }
	db := store.NewDB()
	db.Tasks = []model.Task{
		{ID: 1, Title: "Platform", Kind: model.KindProduct, Status: model.StatusOpen},
		{ID: 2, Title: "Checkout", Kind: model.KindEpic, Status: model.StatusOpen, Parent: pid(1)},
		{ID: 3, Title: "Wire webhook", Kind: model.KindTask, Status: model.StatusInProgress, Parent: pid(2)},
		{ID: 4, Title: "Unit cover", Kind: model.KindSubtask, Status: model.StatusOpen, Parent: pid(3)},
		{ID: 5, Title: "Payments", Kind: model.KindProduct, Status: model.StatusOpen},
	}
	if err := s.Save(db); err != nil {
		t.Fatalf("save db: %v", err)
	}
	return newBrowserModel(s, db, "Alpha", []string{"Alpha"})
}

func TestBrowser_InitialList(t *testing.T) {
	m := seedBrowser(t)
	if m.state != browserList {
		t.Fatalf("state = %v, want list", m.state)
	}
	if len(m.filtered) != 2 || m.filtered[0] != 1 || m.filtered[1] != 5 {
		t.Fatalf("filtered = %v, want the two products", m.filtered)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestBrowser_CursorMovement(t *testing.T) {
	m := seedBrowser(t)
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = mAny.(browserModel)
	if m.cursor != 1 {
		t.Fatalf("cursor after j = %d, want 1", m.cursor)
	}
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = mAny.(browserModel)
	if m.cursor != 1 {
		t.Fatalf("cursor should stop at the last row, got %d", m.cursor)
	}
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = mAny.(browserModel)
	if m.cursor != 0 {
		t.Fatalf("cursor after up = %d, want 0", m.cursor)
	}
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = mAny.(browserModel)
	if m.cursor != 0 {
		t.Fatalf("cursor should stop at the first row, got %d", m.cursor)
	}
}

func TestBrowser_DrillDownAndUp(t *testing.T) {
	m := seedBrowser(t)

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = mAny.(browserModel)
	if !m.ctx.filtered() || m.ctx.level != model.KindEpic {
		t.Fatalf("ctx after drill = %+v", m.ctx)
	}
	if m.statusMsg != "Navigated to All Epics for Product 1 Platform" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	if len(m.filtered) != 1 || m.filtered[0] != 2 {
		t.Fatalf("filtered = %v, want just the epic", m.filtered)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = mAny.(browserModel)
	if m.ctx.level != model.KindTask || len(m.filtered) != 1 || m.filtered[0] != 3 {
		t.Fatalf("second drill: ctx %+v filtered %v", m.ctx, m.filtered)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = mAny.(browserModel)
	if m.statusMsg != "Navigated back to All Epics for Product 1 Platform" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = mAny.(browserModel)
	if m.ctx.filtered() || m.ctx.level != model.KindProduct {
		t.Fatalf("ctx after drilling back up = %+v", m.ctx)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = mAny.(browserModel)
	if m.statusMsg != "Already at top level" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
}

func TestBrowser_DrillDownNeedsChildLevel(t *testing.T) {
	m := seedBrowser(t)
	m.ctx = allAt(model.KindSubtask)
	m.updateFiltered()

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = mAny.(browserModel)
	if m.statusMsg != "No child level for Subtask" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	if m.ctx.level != model.KindSubtask {
		t.Fatalf("ctx should not move, got %+v", m.ctx)
	}
}

func TestBrowser_StepLevelWalksAllKinds(t *testing.T) {
	m := seedBrowser(t)

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m = mAny.(browserModel)
	if m.ctx.level != model.KindEpic || m.ctx.filtered() {
		t.Fatalf("ctx after shift+right = %+v", m.ctx)
	}
	if m.statusMsg != "Navigated to All Epics" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}

	for _, want := range []model.Kind{model.KindTask, model.KindSubtask, model.KindMilestone} {
		mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
		m = mAny.(browserModel)
		if m.ctx.level != want {
			t.Fatalf("ctx level = %s, want %s", m.ctx.level, want)
		}
	}
	if m.cursor != -1 {
		t.Fatalf("cursor on the empty milestone level = %d, want -1", m.cursor)
	}

	// The ends clamp without a message.
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m = mAny.(browserModel)
	if m.ctx.level != model.KindMilestone || m.statusMsg != "" {
		t.Fatalf("expected silent clamp, got level %s msg %q", m.ctx.level, m.statusMsg)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	m = mAny.(browserModel)
	if m.ctx.level != model.KindSubtask || m.statusMsg != "Navigated to All Subtasks" {
		t.Fatalf("shift+left: level %s msg %q", m.ctx.level, m.statusMsg)
	}
}

func TestBrowser_DetailOpenAndHistoryBack(t *testing.T) {
	m := seedBrowser(t)

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(browserModel)
	if m.state != browserDetail {
		t.Fatalf("state = %v, want detail", m.state)
	}
	if m.selectedID == nil || *m.selectedID != 1 {
		t.Fatalf("selectedID = %v, want 1", m.selectedID)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(browserModel)
	if m.state != browserList {
		t.Fatalf("esc should return to the list, got %v", m.state)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	m = mAny.(browserModel)
	if m.statusMsg != "Navigated back" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	m = mAny.(browserModel)
	if m.statusMsg != "No navigation history" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
}

func TestBrowser_DetailParentChildJumps(t *testing.T) {
	m := seedBrowser(t)

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = mAny.(browserModel)
	if m.state != browserDetail {
		t.Fatalf("space should open the detail view, got %v", m.state)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = mAny.(browserModel)
	if m.statusMsg != "No parent task" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = mAny.(browserModel)
	if m.selectedID == nil || *m.selectedID != 2 {
		t.Fatalf("selectedID after child jump = %v, want 2", m.selectedID)
	}
	if m.statusMsg != "Navigated to child task #2" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = mAny.(browserModel)
	if m.selectedID == nil || *m.selectedID != 3 {
		t.Fatalf("selectedID after second child jump = %v, want 3", m.selectedID)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = mAny.(browserModel)
	if m.selectedID == nil || *m.selectedID != 2 {
		t.Fatalf("selectedID after parent jump = %v, want 2", m.selectedID)
	}
	if m.statusMsg != "Navigated to parent task #2" {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
}

func TestBrowser_HelpAnyKeyReturns(t *testing.T) {
	m := seedBrowser(t)
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = mAny.(browserModel)
	if m.state != browserHelp {
		t.Fatalf("state = %v, want help", m.state)
	}
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	m = mAny.(browserModel)
	if m.state != browserList {
		t.Fatalf("any key should leave help, got %v", m.state)
	}
}

func TestBrowser_QuitKeys(t *testing.T) {
	m := seedBrowser(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q should quit")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("esc with no filter should quit")
	}

	m.state = browserHelp
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c should quit from any state")
	}
}

func TestBrowser_WindowSizeTracksDimensions(t *testing.T) {
	m := seedBrowser(t)
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = mAny.(browserModel)
	if m.width != 120 || m.height != 40 || !m.seenWindowSize {
		t.Fatalf("size = %dx%d seen=%v", m.width, m.height, m.seenWindowSize)
	}
}
