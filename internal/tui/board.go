package tui

import (
	"fmt"
	"strings"

	"strata-cli/internal/model"
	"strata-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// boardColumns is the unassigned column plus one per workflow stage.
const boardColumns = 9

// boardLevels bounds the level cycle to Product..Subtask; milestones have no
// workflow stage and never appear on the board.
const boardLevels = 4

const cardHeight = 5

func boardColumnTitles() [boardColumns]string {
	var titles [boardColumns]string
	titles[0] = "Unassigned"
	for i, s := range model.AllStages {
		titles[i+1] = s.Display()
	}
	return titles
}

// stageColumn maps a task's stage to its column index.
func stageColumn(s *model.ProcessStage) int {
	if s == nil {
		return 0
	}
	for i, stage := range model.AllStages {
		if stage == *s {
			return i + 1
		}
	}
	return 0
}

// columnStage is the inverse: the stage a card carries once it sits in column i.
func columnStage(i int) *model.ProcessStage {
	if i <= 0 || i > len(model.AllStages) {
		return nil
	}
	s := model.AllStages[i-1]
	return &s
}

// boardModel is the kanban workflow board: one column per process stage,
// cards filtered to the hierarchy level being viewed.
type boardModel struct {
	store store.Store
	db    *store.DB

	projectName string

	width  int
	height int

	seenWindowSize bool

	ctx      navContext
	navStack boundedStack[navContext]

	columns        [boardColumns][]uint64
	selectedColumn int
	selectedCard   int
	scrollOffsets  [boardColumns]int

	showCompleted  bool
	showTaskDetail bool

	filterInput  textinput.Model
	filterText   string
	filterActive bool

	// editTaskID is set when the user exits the board to edit a card.
	editTaskID *uint64

	statusMsg string
}

func newBoardModel(s store.Store, db *store.DB, projectName string) boardModel {
	m := boardModel{
		store:       s,
		db:          db,
		projectName: projectName,
		ctx:         allAt(model.KindProduct),
	}
	m.filterInput = newFormInput("")
	m.updateColumns()
	return m
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filterActive {
			return m.updateFilter(msg)
		}
		m.statusMsg = ""
		switch msg.String() {
		case "q", "m", "ctrl+q", "esc":
			return m, tea.Quit
		case "d":
			m.drillDown()
		case "u":
			m.drillUp()
		case "enter":
			m.showTaskDetail = !m.showTaskDetail
		case "ctrl+left":
			m.moveCard(false)
		case "ctrl+right":
			m.moveCard(true)
		case "shift+left", "shift+right":
			m.toggleFilteredView()
		case "alt+left":
			m.switchLevel(false)
		case "alt+right":
			m.switchLevel(true)
		case "left":
			if m.selectedColumn > 0 {
				m.selectedColumn--
				m.clampSelection()
			} else {
				m.switchLevel(false)
			}
		case "right":
			if m.selectedColumn < boardColumns-1 {
				m.selectedColumn++
				m.clampSelection()
			} else {
				m.switchLevel(true)
			}
		case "up":
			if m.selectedCard > 0 {
				m.selectedCard--
				m.scrollToSelection()
			}
		case "down":
			if n := len(m.columns[m.selectedColumn]); n > 0 && m.selectedCard < n-1 {
				m.selectedCard++
				m.scrollToSelection()
			}
		case "e":
			if id, ok := m.selectedTaskID(); ok {
				m.editTaskID = &id
				return m, tea.Quit
			}
		case "c":
			m.toggleCompletion()
		case "t":
			m.showCompleted = !m.showCompleted
			m.updateColumns()
			if m.showCompleted {
				m.statusMsg = "Showing completed tasks"
			} else {
				m.statusMsg = "Hiding completed tasks"
			}
		case "/":
			m.filterActive = true
			m.filterInput.Focus()
			m.statusMsg = "Filter: Type to search title/tags/project, Enter to apply, Esc to cancel"
			return m, textinput.Blink
		case "h":
			m.statusMsg = "Help: Enter: Details | e: Edit | c: Complete | t: Toggle done | /: Filter | d: Drill | u: Up | m: Menu | Esc: Exit"
		}
	}
	return m, nil
}

func (m boardModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterActive = false
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.filterText = ""
		m.updateColumns()
		m.statusMsg = ""
		return m, nil
	case "enter":
		m.filterActive = false
		m.filterInput.Blur()
		if m.filterText == "" {
			m.statusMsg = "Filter cleared"
		} else {
			m.statusMsg = fmt.Sprintf("Filter: '%s' (%d tasks shown)", m.filterText, m.totalTasks())
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.filterText = m.filterInput.Value()
		m.updateColumns()
		return m, cmd
	}
}

// updateColumns rebuilds the per-stage card lists from the current context,
// completion filter and search text.
func (m *boardModel) updateColumns() {
	for i := range m.columns {
		m.columns[i] = m.columns[i][:0]
		m.scrollOffsets[i] = 0
	}

	needle := strings.ToLower(m.filterText)
	for i := range m.db.Tasks {
		t := &m.db.Tasks[i]
		if t.Status == model.StatusDone && !m.showCompleted {
			continue
		}
		if t.Kind == model.KindMilestone {
			continue
		}
		if !m.ctx.matches(*t) {
			continue
		}
		if needle != "" && !taskMatchesFilter(t, needle) {
			continue
		}
		col := stageColumn(t.Stage)
		m.columns[col] = append(m.columns[col], t.ID)
	}

	m.clampSelection()
}

func (m *boardModel) clampSelection() {
	if m.selectedColumn >= boardColumns {
		m.selectedColumn = 0
	}
	n := len(m.columns[m.selectedColumn])
	if n == 0 {
		m.selectedCard = 0
		m.scrollOffsets[m.selectedColumn] = 0
	} else if m.selectedCard >= n {
		m.selectedCard = n - 1
	}
	m.scrollToSelection()
}

// visibleCards is how many full cards fit in a column at the current height.
func (m boardModel) visibleCards() int {
	inner := m.height - 1 - 3 - 2
	if inner < cardHeight {
		return 1
	}
	return inner / cardHeight
}

func (m *boardModel) scrollToSelection() {
	visible := m.visibleCards()
	off := m.scrollOffsets[m.selectedColumn]
	if m.selectedCard < off {
		m.scrollOffsets[m.selectedColumn] = m.selectedCard
	} else if m.selectedCard >= off+visible {
		m.scrollOffsets[m.selectedColumn] = m.selectedCard - visible + 1
	}
}

func (m boardModel) selectedTaskID() (uint64, bool) {
	col := m.columns[m.selectedColumn]
	if len(col) == 0 || m.selectedCard >= len(col) {
		return 0, false
	}
	return col[m.selectedCard], true
}

func (m boardModel) selectedBoardTask() *model.Task {
	id, ok := m.selectedTaskID()
	if !ok {
		return nil
	}
	return m.db.Find(id)
}

func (m boardModel) totalTasks() int {
	n := 0
	for i := range m.columns {
		n += len(m.columns[i])
	}
	return n
}

func (m *boardModel) saveBoard() error {
	if err := m.store.Save(m.db); err != nil {
		return err
	}
	m.db = m.store.Load()
	m.updateColumns()
	return nil
}

// toggleCompletion flips the selected card between done and not done. Coming
// back from done restores in-progress when the card sits in an active stage.
func (m *boardModel) toggleCompletion() {
	t := m.selectedBoardTask()
	if t == nil {
		return
	}
	var next model.Status
	if t.Status == model.StatusDone {
		if t.Stage != nil && (*t.Stage == model.StageImplementation || *t.Stage == model.StageTesting) {
			next = model.StatusInProgress
		} else {
			next = model.StatusOpen
		}
	} else {
		next = model.StatusDone
	}
	t.Status = next

	if err := m.saveBoard(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
		return
	}
	switch next {
	case model.StatusDone:
		m.statusMsg = "Task marked as completed"
	case model.StatusInProgress:
		m.statusMsg = "Task marked as in progress"
	default:
		m.statusMsg = "Task marked as open"
	}
}

// moveCard shifts the selected card one stage over and follows it.
func (m *boardModel) moveCard(right bool) {
	target := m.selectedColumn - 1
	if right {
		target = m.selectedColumn + 1
	}
	if target < 0 || target >= boardColumns {
		return
	}
	id, ok := m.selectedTaskID()
	if !ok {
		return
	}
	t := m.db.Find(id)
	if t == nil {
		return
	}
	t.Stage = columnStage(target)

	if err := m.saveBoard(); err != nil {
		m.statusMsg = fmt.Sprintf("Error saving: %v", err)
		return
	}
	m.statusMsg = fmt.Sprintf("Moved task to %s", boardColumnTitles()[target])
	m.selectedColumn = target
	m.selectedCard = 0
	for i, cid := range m.columns[target] {
		if cid == id {
			m.selectedCard = i
			break
		}
	}
	m.clampSelection()
}

// switchLevel steps the hierarchy level, keeping any parent filter. The
// ends clamp silently, same as the browser.
func (m *boardModel) switchLevel(forward bool) {
	level, ok := model.StepLevel(m.ctx.level, forward, boardLevels)
	if !ok {
		return
	}
	if m.ctx.parentID != nil {
		m.ctx = filteredBy(level, *m.ctx.parentID, m.ctx.parentTitle)
	} else {
		m.ctx = allAt(level)
	}
	m.updateColumns()
	m.selectedColumn = 0
	m.selectedCard = 0
	m.statusMsg = fmt.Sprintf("Switched to %s", m.ctx.displayName())
}

func (m *boardModel) toggleFilteredView() {
	if m.ctx.filtered() {
		m.ctx = allAt(m.ctx.level)
		m.statusMsg = "Switched to unfiltered view"
	} else {
		m.statusMsg = "To filter: select a parent item first (feature pending)"
	}
	m.updateColumns()
	m.selectedColumn = 0
	m.selectedCard = 0
}

func (m *boardModel) drillDown() {
	id, ok := m.selectedTaskID()
	if !ok {
		m.statusMsg = "No task selected to drill down into"
		return
	}
	t := m.db.Find(id)
	if t == nil {
		return
	}
	child, ok := model.ChildKind(t.Kind)
	if !ok {
		m.statusMsg = fmt.Sprintf("No child level for %s", t.Kind.Display())
		return
	}
	m.navStack.push(m.ctx)
	m.ctx = filteredBy(child, t.ID, t.Title)
	m.updateColumns()
	m.selectedColumn = 0
	m.selectedCard = 0
	m.statusMsg = fmt.Sprintf("Drilled down to %s", m.ctx.displayName())
}

func (m *boardModel) drillUp() {
	prev, ok := m.navStack.pop()
	if !ok {
		m.statusMsg = "No previous context to return to"
		return
	}
	m.ctx = prev
	m.updateColumns()
	m.selectedColumn = 0
	m.selectedCard = 0
	m.statusMsg = fmt.Sprintf("Navigated back to %s", m.ctx.displayName())
}
