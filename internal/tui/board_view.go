package tui

import (
	"fmt"
	"strings"

	"strata-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m boardModel) View() string {
	if !m.seenWindowSize {
		return ""
	}
	boardH := m.height - 1 - 3
	if boardH < 4 {
		boardH = 4
	}

	var body string
	if m.showTaskDetail {
		body = placeCentered(m.width, boardH, m.viewDetailPopup())
	} else {
		body = m.viewBoard(boardH)
	}
	return m.viewBoardHeader() + "\n" + body + "\n" + m.boardStatusBar()
}

func (m boardModel) viewBoardHeader() string {
	line := lipgloss.NewStyle().Bold(true).Render("WORKFLOW MANAGEMENT") +
		"  " +
		lipgloss.NewStyle().Foreground(colorAccent).Italic(true).Render(
			fmt.Sprintf("Current Project: %s  Current View: %s", m.projectName, m.ctx.displayName()))
	content := lipgloss.NewStyle().Width(m.width - 2).Align(lipgloss.Center).Render(line)
	return titledBox(m.width, 3, "", content, lipgloss.NewStyle())
}

func (m boardModel) viewBoard(boardH int) string {
	colW := m.width / boardColumns
	if colW < 6 {
		colW = 6
	}
	titles := boardColumnTitles()

	cols := make([]string, 0, boardColumns)
	for i := 0; i < boardColumns; i++ {
		w := colW
		if i == boardColumns-1 {
			if rest := m.width - colW*(boardColumns-1); rest > colW {
				w = rest
			}
		}
		cols = append(cols, m.viewColumn(i, titles[i], w, boardH))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m boardModel) viewColumn(idx int, title string, width, height int) string {
	selected := idx == m.selectedColumn
	borderSt := lipgloss.NewStyle()
	if selected {
		borderSt = borderSt.Foreground(kindColor(m.ctx.level)).Bold(true)
	}

	innerH := height - 2
	cards := m.columns[idx]
	off := m.scrollOffsets[idx]
	if off > len(cards) {
		off = len(cards)
	}

	var lines []string
	rendered := 0
	for i := off; i < len(cards) && len(lines)+cardHeight <= innerH; i++ {
		t := m.db.Find(cards[i])
		if t == nil {
			continue
		}
		card := m.renderCard(t, width-2, selected && i == m.selectedCard)
		lines = append(lines, strings.Split(card, "\n")...)
		rendered++
	}

	for len(lines) < innerH {
		lines = append(lines, "")
	}
	indicator := lipgloss.NewStyle().Foreground(colorAccent)
	if off > 0 {
		lines[0] = indicator.Render(fmt.Sprintf("%s +%d above", glyphScrollUp(), off))
	}
	if remaining := len(cards) - off - rendered; remaining > 0 && innerH > 0 {
		lines[innerH-1] = indicator.Render(fmt.Sprintf("%s +%d below", glyphScrollDown(), remaining))
	}

	return titledBox(width, height, title, strings.Join(lines, "\n"), borderSt)
}

// renderCard draws one kanban card: id, up to two wrapped title lines, then
// status and project. The surrounding border marks selection.
func (m boardModel) renderCard(t *model.Task, width int, selected bool) string {
	innerW := width - 2
	meta := lipgloss.NewStyle().Foreground(colorCardMetaFg)

	project := "-"
	if t.Project != nil {
		project = *t.Project
	}

	lines := []string{meta.Render(fmt.Sprintf("#%d", t.ID))}
	titleSt := lipgloss.NewStyle()
	if selected {
		titleSt = titleSt.Bold(true)
	}
	for _, ln := range wrapWords(t.Title, innerW, 2) {
		lines = append(lines, titleSt.Render(ln))
	}
	lines = append(lines, meta.Render(fmt.Sprintf("%s | %s", t.Status.Display(), project)))

	borderSt := lipgloss.NewStyle().Foreground(colorCardBorder)
	if selected {
		borderSt = lipgloss.NewStyle().Foreground(colorSelectedBorder).Bold(true)
	}
	return titledBox(width, cardHeight, "", strings.Join(lines, "\n"), borderSt)
}

// wrapWords greedily wraps s into lines of at most width, keeping maxLines.
func wrapWords(s string, width, maxLines int) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			if len(lines) >= maxLines {
				return lines
			}
			cur = word
		}
	}
	if cur != "" && len(lines) < maxLines {
		lines = append(lines, cur)
	}
	return lines
}

func (m boardModel) viewDetailPopup() string {
	t := m.selectedBoardTask()
	if t == nil {
		return ""
	}
	today := model.Today()
	bold := lipgloss.NewStyle().Bold(true)

	parent := "-"
	if t.Parent != nil {
		if p := m.db.Find(*t.Parent); p != nil {
			parent = fmt.Sprintf("%d (%s)", p.ID, p.Title)
		} else {
			parent = fmt.Sprintf("%d", *t.Parent)
		}
	}
	project := "-"
	if t.Project != nil {
		project = *t.Project
	}
	tags := "-"
	if len(t.Tags) > 0 {
		tags = strings.Join(t.Tags, ", ")
	}
	desc := "-"
	if t.Description != nil && strings.TrimSpace(*t.Description) != "" {
		desc = *t.Description
	}

	lines := []string{
		bold.Render(fmt.Sprintf("Task #%d: %s", t.ID, t.Title)),
		"",
		fmt.Sprintf("Kind:         %s", t.Kind.Display()),
		fmt.Sprintf("Status:       %s", t.Status.Display()),
		fmt.Sprintf("Priority:     %s", model.DisplayPriority(t.Priority)),
		fmt.Sprintf("Urgency:      %s", model.DisplayUrgency(t.Urgency)),
		fmt.Sprintf("Process Stage: %s", model.DisplayStage(t.Stage)),
		fmt.Sprintf("Due:          %s", model.RelativeDue(t.Due, today)),
		fmt.Sprintf("Parent:       %s", parent),
		fmt.Sprintf("Project:      %s", project),
		fmt.Sprintf("Tags:         %s", tags),
		"",
		"Description:",
		desc,
	}
	if t.Summary != nil && *t.Summary != "" {
		lines = append(lines, "", "Summary:", *t.Summary)
	}

	w := m.width * 80 / 100
	h := (m.height - 4) * 80 / 100
	if w < 20 {
		w = 20
	}
	if h < 6 {
		h = 6
	}

	content := lipgloss.NewStyle().Width(w - 2).Render(strings.Join(lines, "\n"))
	borderSt := lipgloss.NewStyle().Foreground(kindColor(m.ctx.level)).Bold(true)
	return titledBox(w, h, "Task Details (Press Enter to close)", content, borderSt)
}

func (m boardModel) boardStatusBar() string {
	var text string
	switch {
	case m.filterActive:
		text = fmt.Sprintf("Filter: %s | Type to search, Enter to apply, Esc to cancel", m.filterText)
	case m.statusMsg != "":
		text = m.statusMsg
	default:
		completed := ""
		if m.showCompleted {
			completed = " [+Done]"
		}
		filter := ""
		if m.filterText != "" {
			filter = fmt.Sprintf(" [Filter: %s]", m.filterText)
		}
		text = fmt.Sprintf(
			"Tasks: %d%s%s | /: Filter | c: Complete | t: Toggle done | d/u: Drill | m: Menu | h: Help",
			m.totalTasks(), completed, filter)
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
