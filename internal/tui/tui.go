package tui

import (
	"path/filepath"

	"strata-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// RunBrowser opens the task browser on the database at dbPath.
func RunBrowser(dbPath string) error {
	applyTUIPreferences()
	s := store.Store{Path: dbPath}
	m := newBrowserModel(s, s.Load(), currentProjectName(dbPath), projectOptions(filepath.Dir(dbPath)))
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// RunBrowserEdit opens the browser directly on the edit form for task id,
// used when the workflow board hands a card over for editing.
func RunBrowserEdit(dbPath string, id uint64) error {
	applyTUIPreferences()
	s := store.Store{Path: dbPath}
	m := newBrowserModel(s, s.Load(), currentProjectName(dbPath), projectOptions(filepath.Dir(dbPath)))
	m.openTaskForEdit(id)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// RunBoard opens the workflow board. It returns the id of the task the user
// chose to edit, or nil when the board was simply closed.
func RunBoard(dbPath string) (*uint64, error) {
	applyTUIPreferences()
	s := store.Store{Path: dbPath}
	m := newBoardModel(s, s.Load(), currentProjectName(dbPath))
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	if bm, ok := final.(boardModel); ok {
		return bm.editTaskID, nil
	}
	return nil, nil
}

// RunMenu shows the project menu over the data directory.
func RunMenu(dir string) (MenuResult, error) {
	return runMenu(dir, false)
}

// RunMenuWorkflow shows the menu opened straight on the workflow project
// picker, used by the wf command when no project is given.
func RunMenuWorkflow(dir string) (MenuResult, error) {
	return runMenu(dir, true)
}

func runMenu(dir string, workflow bool) (MenuResult, error) {
	applyTUIPreferences()
	m := newMenuModel(dir)
	if workflow {
		m.startWorkflowSelection()
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{}, err
	}
	if mm, ok := final.(menuModel); ok {
		return mm.result(), nil
	}
	return MenuResult{}, nil
}

// currentProjectName labels the header of the browser and board.
func currentProjectName(dbPath string) string {
	if p, ok := store.ProjectFromPath(dbPath); ok {
		return p.DisplayName
	}
	return "Default (Legacy)"
}

// projectOptions is the selectable project list for the task form.
func projectOptions(dir string) []string {
	var names []string
	projects, _ := store.DiscoverProjects(dir)
	for _, p := range projects {
		names = append(names, p.DisplayName)
	}
	if legacy, ok := store.LegacyProject(dir); ok {
		names = append(names, legacy.DisplayName)
	}
	if len(names) == 0 {
		names = []string{"Default"}
	}
	return names
}
