package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dialogEditor is the fullscreen editor behind the user story and requirements
// form slots. Esc saves and returns; there is deliberately no discard path
// (matching the single-line fields, which keep edits until the form is
// cancelled as a whole).
type dialogEditor struct {
	title string
	slot  int // form slot receiving the text on close
	ta    textarea.Model
}

func newDialogEditor(title string, slot int, value string, width, height int) *dialogEditor {
	ta := textarea.New()
	// No size limits: stories/requirements can exceed the textarea defaults
	// (bubbles v0.20 has a small default CharLimit).
	ta.CharLimit = 0
	// Avoid the default line-count cap (MaxHeight governs newline insertion).
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.FocusedStyle.CursorLine = ta.BlurredStyle.CursorLine
	ta.SetValue(value)
	ta.Focus()
	ta.CursorEnd()

	d := &dialogEditor{title: title, slot: slot, ta: ta}
	d.resize(width, height)
	return d
}

func (d *dialogEditor) resize(width, height int) {
	w := width - 4
	if w < 20 {
		w = 20
	}
	h := height - 5
	if h < 3 {
		h = 3
	}
	d.ta.SetWidth(w)
	d.ta.SetHeight(h)
}

func (d *dialogEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.ta, cmd = d.ta.Update(msg)
	return cmd
}

func (d *dialogEditor) text() string { return d.ta.Value() }

func (d *dialogEditor) view(width, height int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Padding(0, 1).
		Render(d.title + " - Fullscreen Editor")

	help := styleMuted().Render("arrow keys to navigate   type to edit   enter: new line   esc: save and return")

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		d.ta.View(),
		"",
		help,
	)
	return normalizePane(body, width, height)
}
