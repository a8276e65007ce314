package tui

import (
	"fmt"
	"os"
	"strings"

	"strata-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuState int

const (
	menuMain menuState = iota
	menuProjectList
	menuProjectAction
	menuNewProject
	menuDeleteList
	menuDeleteConfirm
	menuAbout
)

var menuItems = []string{
	"Open Project",
	"New Project",
	"Delete Project",
	"Workflow Manager",
	"About",
	"Exit",
}

// MenuResult is what the project menu settled on: a project to open (nil when
// the user just quit) and whether to open it on the workflow board.
type MenuResult struct {
	Project      *store.Project
	OpenWorkflow bool
}

// menuModel is the project menu: pick a project, create or delete one, or
// jump straight into the workflow board.
type menuModel struct {
	dir string

	width  int
	height int

	seenWindowSize bool

	state  menuState
	cursor int

	projects []store.Project

	nameInput textinput.Model

	deleteTarget *store.Project

	selected     *store.Project
	openWorkflow bool

	statusMsg string
}

func newMenuModel(dir string) menuModel {
	m := menuModel{dir: dir}
	m.nameInput = newFormInput("")
	m.refreshProjects()
	return m
}

// startWorkflowSelection opens the menu directly on the project picker for
// the workflow board, used by the wf command.
func (m *menuModel) startWorkflowSelection() {
	m.refreshProjects()
	if len(m.projects) > 0 {
		m.state = menuProjectAction
		m.cursor = 0
	}
}

func (m *menuModel) refreshProjects() {
	projects, _ := store.DiscoverProjects(m.dir)
	if len(projects) == 0 {
		if legacy, ok := store.LegacyProject(m.dir); ok {
			projects = append(projects, legacy)
		}
	}
	m.projects = projects
}

func (m menuModel) result() MenuResult {
	return MenuResult{Project: m.selected, OpenWorkflow: m.openWorkflow}
}

func (m menuModel) Init() tea.Cmd { return textinput.Blink }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		m.statusMsg = ""
		switch m.state {
		case menuMain:
			return m.updateMain(msg)
		case menuProjectList, menuProjectAction:
			return m.updateProjectList(msg)
		case menuNewProject:
			return m.updateNewProject(msg)
		case menuDeleteList:
			return m.updateDeleteList(msg)
		case menuDeleteConfirm:
			return m.updateDeleteConfirm(msg)
		case menuAbout:
			return m.updateAbout(msg)
		}
	}
	return m, nil
}

func (m menuModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		switch m.cursor {
		case 0:
			m.refreshProjects()
			if len(m.projects) == 0 {
				m.statusMsg = "No projects found. Create a new project first."
			} else {
				m.state = menuProjectList
				m.cursor = 0
			}
		case 1:
			m.state = menuNewProject
			m.nameInput.Reset()
			m.nameInput.Focus()
			return m, textinput.Blink
		case 2:
			m.refreshProjects()
			if len(m.projects) == 0 {
				m.statusMsg = "No projects found to delete."
			} else {
				m.state = menuDeleteList
				m.cursor = 0
			}
		case 3:
			m.refreshProjects()
			if len(m.projects) == 0 {
				m.statusMsg = "No projects found. Create a new project first."
			} else {
				m.state = menuProjectAction
				m.cursor = 0
			}
		case 4:
			m.state = menuAbout
		case 5:
			return m, tea.Quit
		}
	case "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) updateProjectList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.projects) {
			p := m.projects[m.cursor]
			m.selected = &p
			m.openWorkflow = m.state == menuProjectAction
			return m, tea.Quit
		}
	case "esc":
		m.state = menuMain
		m.cursor = 0
	}
	return m, nil
}

func (m menuModel) updateNewProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = menuMain
		m.cursor = 0
		m.nameInput.Blur()
		return m, nil
	case "enter":
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			return m, nil
		}
		p, err := store.CreateProject(m.nameInput.Value(), m.dir)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.selected = &p
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
}

func (m menuModel) updateDeleteList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.projects) {
			p := m.projects[m.cursor]
			m.deleteTarget = &p
			m.state = menuDeleteConfirm
		}
	case "esc":
		m.state = menuMain
		m.cursor = 0
	}
	return m, nil
}

func (m menuModel) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.deleteTarget != nil {
			if err := os.Remove(m.deleteTarget.Path); err != nil {
				m.statusMsg = fmt.Sprintf("Failed to delete project: %v", err)
			} else {
				m.statusMsg = fmt.Sprintf("Project '%s' deleted successfully.", m.deleteTarget.DisplayName)
				m.refreshProjects()
			}
		}
		m.deleteTarget = nil
		m.state = menuMain
		m.cursor = 0
	case "n", "N", "esc":
		m.deleteTarget = nil
		m.state = menuMain
		m.cursor = 0
	}
	return m, nil
}

func (m menuModel) updateAbout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.state = menuMain
		m.cursor = 0
	}
	return m, nil
}

func (m menuModel) View() string {
	if !m.seenWindowSize {
		return ""
	}
	bodyH := m.height - 1
	if bodyH < 2 {
		bodyH = 2
	}

	var body string
	switch m.state {
	case menuProjectList, menuProjectAction:
		body = m.viewProjectList(bodyH, "Select Project", false)
	case menuNewProject:
		body = placeCentered(m.width, bodyH, m.viewNewProject())
	case menuDeleteList:
		body = m.viewProjectList(bodyH, "Select Project to Delete", true)
	case menuDeleteConfirm:
		body = placeCentered(m.width, bodyH, m.viewDeleteConfirm())
	case menuAbout:
		body = m.viewAbout(bodyH)
	default:
		body = m.viewMainMenu(bodyH)
	}
	return body + "\n" + m.menuStatusBar()
}

func (m menuModel) viewMainMenu(bodyH int) string {
	header := lipgloss.NewStyle().Width(m.width - 2).Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Bold(true).Render("PROJECT MANAGEMENT"))
	headerBox := titledBox(m.width, 3, "", header, lipgloss.NewStyle())

	listH := bodyH - 3
	if listH < 2 {
		listH = 2
	}
	var lines []string
	for i, item := range menuItems {
		lines = append(lines, m.menuLine("  "+item, i == m.cursor, false))
	}
	listBox := titledBox(m.width, listH, "Project Management Menu",
		strings.Join(lines, "\n"), lipgloss.NewStyle())

	return headerBox + "\n" + listBox
}

func (m menuModel) viewProjectList(bodyH int, title string, deletion bool) string {
	var lines []string
	for i, p := range m.projects {
		label := "  " + p.DisplayName
		if p.Name == "default" {
			label = fmt.Sprintf("  %s (legacy tasks.json)", p.DisplayName)
		}
		lines = append(lines, m.menuLine(label, i == m.cursor, deletion))
	}
	return titledBox(m.width, bodyH, title, strings.Join(lines, "\n"), lipgloss.NewStyle())
}

// menuLine renders one list row with the pointer prefix on the selection.
// Deletion lists highlight in red.
func (m menuModel) menuLine(label string, selected, deletion bool) string {
	innerW := m.width - 2
	if !selected {
		return padLine("  "+label, innerW)
	}
	line := padLine(glyphPointer()+" "+label, innerW)
	st := lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	if deletion {
		st = lipgloss.NewStyle().Background(colorError).Foreground(lipgloss.Color("255"))
	}
	return st.Render(line)
}

func (m menuModel) viewNewProject() string {
	w := m.width * 60 / 100
	if w < 30 {
		w = 30
	}
	prompt := titledBox(w, 3, "New Project", "Enter project name:", lipgloss.NewStyle())
	input := titledBox(w, 3, "", m.nameInput.View(),
		lipgloss.NewStyle().Foreground(colorKindTask))
	return prompt + "\n" + input
}

func (m menuModel) viewDeleteConfirm() string {
	w := m.width * 70 / 100
	if w < 40 {
		w = 40
	}
	h := m.height * 40 / 100
	if h < 14 {
		h = 14
	}
	name := "Unknown"
	if m.deleteTarget != nil {
		name = m.deleteTarget.DisplayName
	}
	warn := lipgloss.NewStyle().Bold(true).Foreground(colorError)
	bold := lipgloss.NewStyle().Bold(true)
	lines := []string{
		"",
		warn.Render("Are you sure?"),
		"",
		fmt.Sprintf("This will permanently delete project: %s", name),
		"",
		bold.Render("This action is unrecoverable."),
		"",
		"Note: We recommend you apply git source control",
		"to ~/.strata for backup purposes.",
		"",
		"",
		"Press Y to confirm deletion, N or Esc to cancel",
	}
	content := lipgloss.NewStyle().Width(w - 2).Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
	return titledBox(w, h, "Delete Project", content,
		lipgloss.NewStyle().Foreground(colorError))
}

func (m menuModel) viewAbout(bodyH int) string {
	bold := lipgloss.NewStyle().Bold(true)
	lines := []string{
		"",
		bold.Render("Strata - Project Management CLI"),
		"",
		"A hierarchical task management system with",
		"support for multiple projects and workflows.",
		"",
		"Version: 0.1.0",
		"",
		"Press any key to return to main menu",
	}
	content := lipgloss.NewStyle().Width(m.width - 2).Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
	return titledBox(m.width, bodyH, "About", content, lipgloss.NewStyle())
}

func (m menuModel) menuStatusBar() string {
	text := m.statusMsg
	if text == "" {
		up, down := glyphArrowUp(), glyphArrowDown()
		switch m.state {
		case menuProjectList, menuDeleteList:
			text = fmt.Sprintf("Use %s%s to navigate, Enter to select, Esc to go back", up, down)
		case menuProjectAction:
			text = fmt.Sprintf("Select a project for Workflow - Use %s%s to navigate, Enter to select, Esc to go back", up, down)
		case menuNewProject:
			text = "Type project name, Enter to create, Esc to cancel"
		case menuDeleteConfirm:
			text = "Press Y to confirm, N or Esc to cancel"
		case menuAbout:
			text = "Press any key to return"
		default:
			text = fmt.Sprintf("Use %s%s to navigate, Enter to select, q/Esc to quit", up, down)
		}
	}
	return lipgloss.NewStyle().
		Background(colorKindProduct).
		Foreground(lipgloss.Color("255")).
		Render(padLine(text, m.width))
}
