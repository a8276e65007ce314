package tui

import (
	"fmt"
	"strings"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// browserState is the browser's active screen. List is the home screen; every
// other state returns there (directly or through the alt+left history).
type browserState int

const (
	browserList browserState = iota
	browserDetail
	browserAdd
	browserEdit
	browserStoryDialog
	browserReqDialog
	browserHelp
	browserConfirm
)

// browserSnapshot is one alt+left history entry: screen, hierarchy context and
// selected task restore together so "back" lands exactly where the user was.
type browserSnapshot struct {
	state      browserState
	ctx        navContext
	selectedID *uint64
}

// browserModel is the task browser: a level-at-a-time table over the
// hierarchy with detail, add/edit form, fullscreen editors, help and a
// delete confirmation layered on top.
type browserModel struct {
	store store.Store
	db    *store.DB
	// projectName labels the header; projects holds the display names offered
	// by the form's project selector.
	projectName string
	projects    []string

	width  int
	height int

	// First WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	state browserState

	ctx navContext
	// navStack backs the plain left/right drill; history backs alt+left.
	navStack boundedStack[navContext]
	history  boundedStack[browserSnapshot]

	// filtered is the visible slice of task ids for the current context,
	// completion filter and search text. cursor indexes into it; -1 when empty.
	filtered []uint64
	cursor   int

	// selectedID is the task open in the detail view (and the delete target).
	selectedID *uint64

	form   *taskForm
	dialog *dialogEditor

	filterInput  textinput.Model
	filterText   string
	filterActive bool

	confirmAction string
	confirmFocus  confirmModalFocus

	showCompleted bool

	statusMsg string
}

func newBrowserModel(s store.Store, db *store.DB, projectName string, projects []string) browserModel {
	m := browserModel{
		store:       s,
		db:          db,
		projectName: projectName,
		projects:    projects,
		state:       browserList,
		ctx:         allAt(model.KindProduct),
		cursor:      -1,
	}
	m.filterInput = newFormInput("")
	m.updateFiltered()
	return m
}

func (m browserModel) Init() tea.Cmd { return textinput.Blink }

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		if m.dialog != nil {
			m.dialog.resize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Status messages live until the next key press.
		m.statusMsg = ""
		switch m.state {
		case browserList:
			return m.updateList(msg)
		case browserDetail:
			return m.updateDetail(msg)
		case browserAdd, browserEdit:
			return m.updateForm(msg)
		case browserStoryDialog, browserReqDialog:
			return m.updateDialog(msg)
		case browserHelp:
			return m.updateHelp(msg)
		case browserConfirm:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m browserModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		switch msg.String() {
		case "esc":
			m.filterActive = false
			m.filterInput.Reset()
			m.filterInput.Blur()
			m.filterText = ""
			m.updateFiltered()
			return m, nil
		case "enter":
			m.filterActive = false
			m.filterInput.Blur()
			if m.filterText == "" {
				m.statusMsg = "Filter cleared"
			} else {
				m.statusMsg = fmt.Sprintf("Filter applied: '%s' (%d tasks)", m.filterText, len(m.filtered))
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.filterText = m.filterInput.Value()
			m.updateFiltered()
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+q":
		return m, tea.Quit
	case "esc":
		if m.filterText != "" {
			m.filterText = ""
			m.filterInput.Reset()
			m.updateFiltered()
			return m, nil
		}
		return m, tea.Quit
	case "alt+left":
		if m.goBack() {
			m.statusMsg = "Navigated back"
		} else {
			m.statusMsg = "No navigation history"
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else if m.cursor < 0 && len(m.filtered) > 0 {
			m.cursor = 0
		}
	case "down", "j":
		if m.cursor >= 0 && m.cursor+1 < len(m.filtered) {
			m.cursor++
		} else if m.cursor < 0 && len(m.filtered) > 0 {
			m.cursor = 0
		}
	case "shift+left":
		m.stepLevel(false)
	case "shift+right":
		m.stepLevel(true)
	case "left":
		m.drillUp()
	case "right":
		m.drillDown()
	case "enter", " ":
		if id, ok := m.cursorTaskID(); ok {
			m.selectedID = &id
			m.pushState(browserDetail)
		}
	case "a":
		m.form = newTaskFormForContext(m.ctx, m.projects)
		m.pushState(browserAdd)
		return m, textinput.Blink
	case "e":
		if t := m.cursorTask(); t != nil {
			id := t.ID
			m.selectedID = &id
			m.form = newTaskFormFromTask(*t, m.projects)
			m.pushState(browserEdit)
			return m, textinput.Blink
		}
	case "d":
		if id, ok := m.cursorTaskID(); ok {
			m.selectedID = &id
			m.confirmAction = fmt.Sprintf("Delete task #%d", id)
			m.confirmFocus = confirmFocusConfirm
			m.state = browserConfirm
		}
	case "s":
		m.cycleStatus()
	case "c":
		m.toggleDone()
	case "p":
		m.cycleStage()
	case "t":
		m.showCompleted = !m.showCompleted
		m.updateFiltered()
		if m.showCompleted {
			m.statusMsg = fmt.Sprintf("Showing all tasks (%d total)", len(m.filtered))
		} else {
			m.statusMsg = fmt.Sprintf("Hiding completed tasks (%d visible)", len(m.filtered))
		}
	case "/":
		m.filterActive = true
		m.filterInput.Focus()
		m.statusMsg = "Filter mode: Type to search title/tags/project, Enter to apply, Esc to cancel"
		return m, textinput.Blink
	case "h", "f1":
		m.pushState(browserHelp)
	case "r":
		m.refreshTasks()
		m.statusMsg = "Tasks refreshed"
	}
	return m, nil
}

func (m browserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.state = browserList
	case "e":
		if t := m.selectedTask(); t != nil {
			m.form = newTaskFormFromTask(*t, m.projects)
			m.pushState(browserEdit)
			return m, textinput.Blink
		}
	case "d":
		if m.selectedID != nil {
			m.confirmAction = fmt.Sprintf("Delete task #%d", *m.selectedID)
			m.confirmFocus = confirmFocusConfirm
			m.pushState(browserConfirm)
		}
	case "p":
		if t := m.selectedTask(); t != nil {
			if t.Parent != nil {
				pid := *t.Parent
				m.selectedID = &pid
				m.statusMsg = fmt.Sprintf("Navigated to parent task #%d", pid)
			} else {
				m.statusMsg = "No parent task"
			}
		}
	case "c":
		if m.selectedID != nil {
			children := m.db.ChildrenMap()[*m.selectedID]
			if len(children) > 0 {
				cid := children[0]
				m.selectedID = &cid
				m.statusMsg = fmt.Sprintf("Navigated to child task #%d", cid)
			} else {
				m.statusMsg = "No child tasks"
			}
		}
	}
	return m, nil
}

func (m browserModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	isEdit := m.state == browserEdit
	switch msg.String() {
	case "esc":
		m.state = browserList
		m.form = nil
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, textinput.Blink
	case "shift+tab", "up":
		m.form.prev()
		return m, textinput.Blink
	case "enter":
		if m.form.activeFullscreen() {
			title, slot, next := "User Story", slotUserStory, browserStoryDialog
			if m.form.active == slotRequirements {
				title, slot, next = "Requirements", slotRequirements, browserReqDialog
			}
			m.dialog = newDialogEditor(title, slot, m.form.slots[slot].value(), m.width, m.height)
			m.pushState(next)
			return m, nil
		}
		if strings.TrimSpace(m.form.slots[slotTitle].value()) == "" {
			m.statusMsg = "Title is required"
			return m, nil
		}
		t, err := m.form.materialise(m.db, model.Today())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		if isEdit {
			if cur := m.db.Find(t.ID); cur != nil {
				*cur = t
			}
		} else {
			m.db.Tasks = append(m.db.Tasks, t)
		}
		if err := m.saveDB(); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.state = browserList
		m.form = nil
		if isEdit {
			m.statusMsg = "Task updated"
		} else {
			m.statusMsg = "Task created"
		}
		return m, nil
	default:
		return m, m.form.handleKey(msg)
	}
}

func (m browserModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		if m.form != nil && m.dialog != nil {
			m.form.slots[m.dialog.slot].setValue(m.dialog.text())
		}
		m.dialog = nil
		if m.form != nil && m.form.isEdit() {
			m.state = browserEdit
		} else {
			m.state = browserAdd
		}
		return m, nil
	}
	return m, m.dialog.update(msg)
}

// The help screen promises "press any key to return", so every key returns.
func (m browserModel) updateHelp(tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.state = browserList
	return m, nil
}

func (m browserModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y", "Y":
		m.applyConfirm()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			m.applyConfirm()
		}
	case "n", "N", "esc", "ctrl+g":
	default:
		return m, nil
	}
	m.state = browserList
	m.confirmAction = ""
	return m, nil
}

func (m *browserModel) applyConfirm() {
	if m.confirmAction == "" {
		return
	}
	if err := m.deleteSelected(); err != nil {
		m.statusMsg = fmt.Sprintf("Error deleting task: %v", err)
	}
}

// pushState records the current screen in the alt+left history before
// switching. The drill stack is untouched; it only tracks hierarchy moves.
func (m *browserModel) pushState(next browserState) {
	m.history.push(browserSnapshot{state: m.state, ctx: m.ctx, selectedID: m.selectedID})
	m.state = next
	m.statusMsg = ""
}

func (m *browserModel) goBack() bool {
	snap, ok := m.history.pop()
	if !ok {
		return false
	}
	m.state = snap.state
	m.ctx = snap.ctx
	m.selectedID = snap.selectedID
	m.updateFiltered()
	m.statusMsg = ""
	return true
}

// stepLevel moves to the adjacent hierarchy level, showing all items of that
// level. The ends clamp silently.
func (m *browserModel) stepLevel(forward bool) {
	next, ok := model.StepLevel(m.ctx.level, forward, len(model.AllKinds))
	if !ok {
		return
	}
	m.ctx = allAt(next)
	m.updateFiltered()
	m.statusMsg = fmt.Sprintf("Navigated to %s", m.ctx.displayName())
}

// drillDown narrows the view to the selected task's children.
func (m *browserModel) drillDown() {
	t := m.cursorTask()
	if t == nil {
		m.statusMsg = "No item selected"
		return
	}
	child, ok := model.ChildKind(t.Kind)
	if !ok {
		m.statusMsg = fmt.Sprintf("No child level for %s", t.Kind.Display())
		return
	}
	m.navStack.push(m.ctx)
	m.ctx = filteredBy(child, t.ID, t.Title)
	m.updateFiltered()
	m.statusMsg = fmt.Sprintf("Navigated to %s", m.ctx.displayName())
}

func (m *browserModel) drillUp() {
	prev, ok := m.navStack.pop()
	if !ok {
		m.statusMsg = "Already at top level"
		return
	}
	m.ctx = prev
	m.updateFiltered()
	m.statusMsg = fmt.Sprintf("Navigated back to %s", m.ctx.displayName())
}

// updateFiltered rebuilds the visible id list from the current context,
// completion filter and search text, keeping the cursor on the same task
// when it survives.
func (m *browserModel) updateFiltered() {
	var oldID *uint64
	if m.cursor >= 0 && m.cursor < len(m.filtered) {
		id := m.filtered[m.cursor]
		oldID = &id
	}

	needle := strings.ToLower(m.filterText)
	m.filtered = m.filtered[:0]
	for i := range m.db.Tasks {
		t := &m.db.Tasks[i]
		if !m.showCompleted && t.Status == model.StatusDone {
			continue
		}
		if !m.ctx.matches(*t) {
			continue
		}
		if needle != "" && !taskMatchesFilter(t, needle) {
			continue
		}
		m.filtered = append(m.filtered, t.ID)
	}

	if len(m.filtered) == 0 {
		m.cursor = -1
		return
	}
	m.cursor = 0
	if oldID != nil {
		for i, id := range m.filtered {
			if id == *oldID {
				m.cursor = i
				break
			}
		}
	}
}

func taskMatchesFilter(t *model.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return t.Project != nil && strings.Contains(strings.ToLower(*t.Project), needle)
}

// refreshTasks reloads from disk so edits made by CLI commands in another
// terminal show up.
func (m *browserModel) refreshTasks() {
	m.db = m.store.Load()
	m.updateFiltered()
}

func (m *browserModel) saveDB() error {
	if err := m.store.Save(m.db); err != nil {
		return err
	}
	m.refreshTasks()
	return nil
}

func (m *browserModel) cursorTaskID() (uint64, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return 0, false
	}
	return m.filtered[m.cursor], true
}

func (m *browserModel) cursorTask() *model.Task {
	id, ok := m.cursorTaskID()
	if !ok {
		return nil
	}
	return m.db.Find(id)
}

func (m *browserModel) selectedTask() *model.Task {
	if m.selectedID == nil {
		return nil
	}
	return m.db.Find(*m.selectedID)
}

func (m *browserModel) cycleStatus() {
	t := m.cursorTask()
	if t == nil {
		return
	}
	next := t.Status.Next()
	t.Status = next
	if err := m.saveDB(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
	} else {
		m.statusMsg = fmt.Sprintf("Task status updated to %s", next.Display())
	}
}

func (m *browserModel) toggleDone() {
	t := m.cursorTask()
	if t == nil {
		return
	}
	if t.Status == model.StatusDone {
		t.Status = model.StatusOpen
	} else {
		t.Status = model.StatusDone
	}
	if err := m.saveDB(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
	} else {
		m.statusMsg = "Task status updated"
	}
}

func (m *browserModel) cycleStage() {
	t := m.cursorTask()
	if t == nil {
		return
	}
	next := model.NextStage(t.Stage)
	t.Stage = &next
	if err := m.saveDB(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
	} else {
		m.statusMsg = fmt.Sprintf("Process stage updated to %s", next.Display())
	}
}

// deleteSelected removes the selected task and its whole subtree.
func (m *browserModel) deleteSelected() error {
	if m.selectedID == nil {
		return nil
	}
	doomed := map[uint64]bool{*m.selectedID: true}
	for _, id := range m.db.Descendants(*m.selectedID) {
		doomed[id] = true
	}
	m.db.RemoveIDs(doomed)
	if err := m.saveDB(); err != nil {
		return err
	}
	m.statusMsg = fmt.Sprintf("Deleted %d task(s)", len(doomed))
	return nil
}

// openTaskForEdit jumps straight into the edit form, used when the workflow
// board hands a task over for editing.
func (m *browserModel) openTaskForEdit(id uint64) {
	t := m.db.Find(id)
	if t == nil {
		return
	}
	tid := t.ID
	m.selectedID = &tid
	m.form = newTaskFormFromTask(*t, m.projects)
	m.pushState(browserEdit)
}
