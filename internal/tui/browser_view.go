package tui

import (
	"fmt"
	"strconv"
	"strings"

	"strata-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Fixed columns of the task table; the title column takes whatever is left.
var taskTableCols = []struct {
	name  string
	width int
}{
	{"ID", 4},
	{"Kind", 10},
	{"Status", 12},
	{"Priority", 15},
	{"Urgency", 18},
	{"Stage", 13},
	{"Due", 12},
	{"Project", 12},
}

func (m browserModel) View() string {
	if !m.seenWindowSize {
		return ""
	}
	bodyH := m.height - 1
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.state {
	case browserDetail:
		body = m.viewDetail(bodyH)
	case browserAdd:
		body = m.viewForm(bodyH, false)
	case browserEdit:
		body = m.viewForm(bodyH, true)
	case browserStoryDialog, browserReqDialog:
		body = m.dialog.view(m.width, bodyH)
	case browserHelp:
		body = m.viewHelp(bodyH)
	case browserConfirm:
		modal := renderConfirmModal(m.width, "Confirm Action",
			fmt.Sprintf("Are you sure you want to:\n\n%s\n\nThis action cannot be undone.", m.confirmAction),
			"Confirm", "Cancel", m.confirmFocus)
		body = placeCentered(m.width, bodyH, modal)
	default:
		body = m.viewList(bodyH)
	}
	return body + "\n" + m.statusBar()
}

func (m browserModel) viewList(bodyH int) string {
	tableH := bodyH - 3
	if tableH < 2 {
		tableH = 2
	}
	return m.viewHeader() + "\n" + m.viewTable(tableH)
}

func (m browserModel) viewHeader() string {
	line := lipgloss.NewStyle().Bold(true).Render("PROJECT MANAGEMENT") +
		"  " +
		lipgloss.NewStyle().Foreground(colorAccent).Italic(true).Render(
			fmt.Sprintf("Current Project: %s  Current View: %s", m.projectName, m.ctx.displayName()))
	content := lipgloss.NewStyle().Width(m.width - 2).Align(lipgloss.Center).Render(line)
	return titledBox(m.width, 3, "", content, lipgloss.NewStyle())
}

func (m browserModel) viewTable(tableH int) string {
	innerW := m.width - 2
	innerH := tableH - 2
	if innerH < 1 {
		innerH = 1
	}

	levelColor := kindColor(m.ctx.level)
	headerFg := lipgloss.TerminalColor(lipgloss.Color("255"))
	if m.ctx.level == model.KindTask {
		headerFg = colorOnGold
	}

	// 3-column gutter for the selection marker, then the fixed columns with a
	// single space between, then the flexible title column.
	titleW := innerW - 3
	for _, c := range taskTableCols {
		titleW -= c.width + 1
	}
	if titleW < 10 {
		titleW = 10
	}

	var hb strings.Builder
	hb.WriteString("   ")
	for _, c := range taskTableCols {
		hb.WriteString(padLine(c.name, c.width))
		hb.WriteByte(' ')
	}
	hb.WriteString(padLine("Title", titleW))
	headerRow := lipgloss.NewStyle().
		Background(levelColor).
		Foreground(headerFg).
		Bold(true).
		Render(padLine(hb.String(), innerW))

	visible := innerH - 1
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if m.cursor >= visible {
		offset = m.cursor - visible + 1
	}

	rows := []string{headerRow}
	for i := offset; i < len(m.filtered) && i < offset+visible; i++ {
		t := m.db.Find(m.filtered[i])
		if t == nil {
			continue
		}
		rows = append(rows, m.renderTaskRow(t, i == m.cursor, innerW, titleW))
	}

	title := fmt.Sprintf("Tasks (%d/%d) - Press 'h' for help", len(m.filtered), len(m.db.Tasks))
	return titledBox(m.width, tableH, title, strings.Join(rows, "\n"), lipgloss.NewStyle())
}

func (m browserModel) renderTaskRow(t *model.Task, selected bool, innerW, titleW int) string {
	today := model.Today()
	project := "-"
	if t.Project != nil {
		project = *t.Project
	}
	title := t.Title
	if len(t.Tags) > 0 {
		title += fmt.Sprintf(" [%s]", strings.Join(t.Tags, ","))
	}
	if depth := len(m.db.Ancestors(t.ID)); depth > 0 {
		title = strings.Repeat(" ", depth) + title
	}

	var sb strings.Builder
	if selected {
		sb.WriteString(">> ")
	} else {
		sb.WriteString("   ")
	}
	cells := []string{
		strconv.FormatUint(t.ID, 10),
		t.Kind.Display(),
		t.Status.Display(),
		model.DisplayPriority(t.Priority),
		model.DisplayUrgency(t.Urgency),
		model.DisplayStage(t.Stage),
		model.RelativeDue(t.Due, today),
		project,
	}
	for i, c := range taskTableCols {
		sb.WriteString(padLine(cells[i], c.width))
		sb.WriteByte(' ')
	}
	sb.WriteString(padLine(title, titleW))

	line := padLine(sb.String(), innerW)
	switch {
	case selected:
		return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg).Render(line)
	case t.Status == model.StatusDone:
		return styleMuted().Render(line)
	case t.Status == model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(kindColor(t.Kind)).Bold(true).Render(line)
	default:
		return line
	}
}

func (m browserModel) viewDetail(bodyH int) string {
	t := m.selectedTask()
	if t == nil {
		return normalizePane("", m.width, bodyH)
	}
	innerW := m.width - 2
	today := model.Today()
	bold := lipgloss.NewStyle().Bold(true)
	link := lipgloss.NewStyle().Foreground(colorAccent)

	lines := []string{
		bold.Render("ID: ") + strconv.FormatUint(t.ID, 10),
		bold.Render("Title: ") + t.Title,
	}
	if t.Summary != nil {
		lines = append(lines, bold.Render("Summary: ")+*t.Summary)
	}
	project := "-"
	if t.Project != nil {
		project = *t.Project
	}
	lines = append(lines,
		bold.Render("Kind: ")+t.Kind.Display(),
		bold.Render("Status: ")+t.Status.Display(),
		bold.Render("Priority: ")+model.DisplayPriority(t.Priority),
		bold.Render("Urgency: ")+model.DisplayUrgency(t.Urgency),
		bold.Render("Process Stage: ")+model.DisplayStage(t.Stage),
		bold.Render("Project: ")+project,
	)

	due := "-"
	if t.Due != nil {
		due = fmt.Sprintf("%s (%s)", t.Due, model.RelativeDue(t.Due, today))
	}
	lines = append(lines, bold.Render("Due: ")+due)

	if t.Parent != nil {
		if p := m.db.Find(*t.Parent); p != nil {
			lines = append(lines, bold.Render("Parent: ")+
				link.Render(fmt.Sprintf("#%d - %s", p.ID, p.Title))+
				" (Press 'p' to go to parent)")
		} else {
			lines = append(lines, bold.Render("Parent: ")+"-")
		}
	} else {
		lines = append(lines, bold.Render("Parent: ")+"-")
	}

	children := m.db.ChildrenMap()[t.ID]
	if len(children) > 0 {
		lines = append(lines, bold.Render("Children: ")+"(Press 'c' to cycle through children)")
		for i, cid := range children {
			if i == 3 {
				lines = append(lines, fmt.Sprintf("  ... and %d more", len(children)-3))
				break
			}
			if c := m.db.Find(cid); c != nil {
				lines = append(lines, "  "+link.Render(fmt.Sprintf("#%d - %s", c.ID, c.Title)))
			}
		}
	} else {
		lines = append(lines, bold.Render("Children: ")+"-")
	}

	tags := "-"
	if len(t.Tags) > 0 {
		tags = strings.Join(t.Tags, ", ")
	}
	lines = append(lines, bold.Render("Tags: ")+tags)

	if t.IssueLink != nil || t.PRLink != nil {
		lines = append(lines, "", bold.Render("Links:"))
		if t.IssueLink != nil {
			lines = append(lines, "Issue: "+link.Render(*t.IssueLink))
		}
		if t.PRLink != nil {
			lines = append(lines, "PR: "+link.Render(*t.PRLink))
		}
	}

	lines = append(lines, "", bold.Render("Description:"))
	if t.Description != nil && strings.TrimSpace(*t.Description) != "" {
		lines = append(lines, renderMarkdownCompact(*t.Description, innerW))
	} else {
		lines = append(lines, "-")
	}
	if t.UserStory != nil && strings.TrimSpace(*t.UserStory) != "" {
		lines = append(lines, "", bold.Render("User Story:"), renderMarkdownCompact(*t.UserStory, innerW))
	}
	if t.Requirements != nil && strings.TrimSpace(*t.Requirements) != "" {
		lines = append(lines, "", bold.Render("Requirements:"), renderMarkdownCompact(*t.Requirements, innerW))
	}

	return titledBox(m.width, bodyH,
		"Task Details - [e]dit, [d]elete, [p]arent, [c]hild, [Esc] back",
		strings.Join(lines, "\n"), lipgloss.NewStyle())
}

// formSlotHeight gives the left-column box heights in slot order; description
// gets an extra row.
func formSlotHeight(slot int) int {
	if slot == slotDescription {
		return 4
	}
	return 3
}

func (m browserModel) viewForm(bodyH int, isEdit bool) string {
	leftW := m.width / 2
	rightW := m.width - leftW
	if leftW < 20 || rightW < 20 {
		return normalizePane("Terminal too narrow", m.width, bodyH)
	}

	var left []string
	for slot := slotTitle; slot <= slotStage; slot++ {
		left = append(left, m.formFieldBox(leftW, slot))
	}

	storyTitle := fmt.Sprintf("%s (Enter for fullscreen)", m.form.slots[slotUserStory].label)
	reqTitle := fmt.Sprintf("%s (Enter for fullscreen)", m.form.slots[slotRequirements].label)
	instrH := bodyH - 40
	if instrH < 3 {
		instrH = 3
	}
	verb := "Create"
	if isEdit {
		verb = "Save"
	}
	instructions := fmt.Sprintf(
		"Tab/%s%s: Navigate   %s%s: Change selectors   Enter: %s/Dialog   Esc: Cancel   User Story & Requirements have fullscreen dialogs!",
		glyphArrowUp(), glyphArrowDown(), glyphArrowLeft(), glyphArrow(), verb)

	right := []string{
		m.formTextPane(rightW, 20, storyTitle, slotUserStory),
		m.formTextPane(rightW, 20, reqTitle, slotRequirements),
		titledBox(rightW, instrH, "Instructions",
			lipgloss.NewStyle().Width(rightW-2).Render(instructions), lipgloss.NewStyle()),
	}

	leftCol := normalizePane(strings.Join(left, "\n"), leftW, bodyH)
	rightCol := normalizePane(strings.Join(right, "\n"), rightW, bodyH)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
}

func (m browserModel) formFieldBox(width, slot int) string {
	s := &m.form.slots[slot]
	innerW := width - 2

	title := s.label
	var content string
	if s.selector() {
		title = fmt.Sprintf("%s (%s %s)", s.label, glyphArrowLeft(), glyphArrow())
		content = lipgloss.NewStyle().Width(innerW).Align(lipgloss.Center).
			Render(fmt.Sprintf("< %s >", s.value()))
	} else {
		if slot == slotParent {
			if pid, err := strconv.ParseUint(strings.TrimSpace(s.value()), 10, 64); err == nil {
				if p := m.db.Find(pid); p != nil {
					title = fmt.Sprintf("%s (%s %s)", s.label, glyphArrow(), p.Title)
				}
			}
		}
		content = s.input.View()
	}

	borderSt := lipgloss.NewStyle()
	if m.form.active == slot {
		borderSt = borderSt.Foreground(colorKindTask)
	}
	return titledBox(width, formSlotHeight(slot), title, content, borderSt)
}

// formTextPane renders the tall right-column panes. The stored value shows
// wrapped and read-only; editing happens in the fullscreen dialog.
func (m browserModel) formTextPane(width, height int, title string, slot int) string {
	innerW := width - 2
	content := lipgloss.NewStyle().Width(innerW).Render(m.form.slots[slot].value())
	borderSt := lipgloss.NewStyle()
	if m.form.active == slot {
		borderSt = borderSt.Foreground(colorKindTask)
	}
	return titledBox(width, height, title, content, borderSt)
}

func (m browserModel) viewHelp(bodyH int) string {
	bold := lipgloss.NewStyle().Bold(true)
	up, down, lt, rt := glyphArrowUp(), glyphArrowDown(), glyphArrowLeft(), glyphArrow()

	key := func(k, desc string) string {
		return "  " + padLine(k, 13) + desc
	}

	lines := []string{
		bold.Render("Task Manager Help"),
		"",
		bold.Render("Task List Navigation:"),
		key(fmt.Sprintf("%s/k, %s/j", up, down), "Navigate tasks"),
		key(fmt.Sprintf("%s/%s", lt, rt), "Navigate Item Hierarchy"),
		key(fmt.Sprintf("Shift + %s/%s", lt, rt), "Navigate All Items Hierarchy"),
		key("Enter/Space", "View task details"),
		key("a", "Add new task"),
		key("e", "Edit selected task"),
		key("d", "Delete selected task"),
		key("s", fmt.Sprintf("Cycle task status (Open %s In Progress %s Done %s Open)", rt, rt, rt)),
		key("p", fmt.Sprintf("Cycle process stage (Ideation %s Design %s ... %s Release)", rt, rt, rt)),
		key("c", "Toggle task completion"),
		key("t", "Toggle show/hide completed tasks"),
		key("r", "Refresh task list"),
		key("/", "Filter tasks by title/tags/project"),
		key("h/F1", "Show this help"),
		key("q/Ctrl+C/Esc", "Quit"),
		"",
		bold.Render("Task Detail View:"),
		key("e", "Edit task"),
		key("d", "Delete task"),
		key("Esc/q", "Back to task list"),
		"",
		bold.Render("Form Navigation:"),
		key(fmt.Sprintf("Tab/%s%s", up, down), "Navigate between fields"),
		key(fmt.Sprintf("%s/%s", lt, rt), "Change kind/status selectors"),
		key("Enter", "Save/Create task"),
		key("Esc", "Cancel and return"),
		"",
		bold.Render("Due Date Formats:"),
		key("YYYY-MM-DD", "Specific date (e.g., 2024-12-25)"),
		key("today", "Today's date"),
		key("tomorrow", "Tomorrow's date"),
		key("in 3d", "3 days from today"),
	}

	return titledBox(m.width, bodyH, "Help - Press any key to return",
		strings.Join(lines, "\n"), lipgloss.NewStyle())
}

func (m browserModel) statusBar() string {
	var text string
	switch {
	case m.statusMsg != "":
		text = m.statusMsg
	case m.filterActive:
		text = fmt.Sprintf("Search: %s (Esc to clear, Enter to confirm)", m.filterText)
	case m.filterText != "":
		text = fmt.Sprintf("Tasks: %d (filtered by '%s') | Press 'h' for help", len(m.filtered), m.filterText)
	default:
		switch m.state {
		case browserList:
			backTip := ""
			if !m.history.empty() {
				backTip = fmt.Sprintf(" | Alt+%s Back", glyphArrowLeft())
			}
			text = fmt.Sprintf("Tasks: %d | Press 'h' for help%s", len(m.filtered), backTip)
		case browserDetail:
			text = "Task Details"
		case browserAdd:
			text = "Add New Task"
		case browserEdit:
			text = "Edit Task"
		case browserStoryDialog:
			text = "User Story - Fullscreen Editor (Esc to save & return)"
		case browserReqDialog:
			text = "Requirements - Fullscreen Editor (Esc to save & return)"
		case browserHelp:
			text = "Help"
		case browserConfirm:
			text = "Confirm Action"
		}
	}

	fg := lipgloss.TerminalColor(lipgloss.Color("255"))
	if m.ctx.level == model.KindTask {
		fg = colorOnGold
	}
	return lipgloss.NewStyle().
		Background(kindColor(m.ctx.level)).
		Foreground(fg).
		Render(padLine(text, m.width))
}
