package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared modal chrome. Callers pass the terminal width; the box clamps itself
// to a readable column and centers via placeCentered.

func modalWidth(termWidth int) int {
	w := termWidth - 8
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// modalBodyWidth returns the usable content width inside a modal rendered with
// renderModalBox for the same terminal width (border plus horizontal padding).
func modalBodyWidth(termWidth int) int {
	w := modalWidth(termWidth) - 6
	if w < 10 {
		w = 10
	}
	return w
}

func renderModalBox(termWidth int, title string, content string) string {
	w := modalWidth(termWidth)
	inner := w - 2

	headerSt := lipgloss.NewStyle().
		Width(inner).
		Padding(0, 2).
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg)
	bodySt := lipgloss.NewStyle().
		Width(inner).
		Padding(0, 2).
		Foreground(colorModalSurfaceFg).
		Background(colorModalSurfaceBg)

	box := lipgloss.JoinVertical(lipgloss.Left,
		headerSt.Render(title),
		bodySt.Render(""),
		bodySt.Render(content),
		bodySt.Render(""),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSelectedBorder).
		BorderBackground(colorModalSurfaceBg).
		Render(box)
}

func placeCentered(termW, termH int, content string) string {
	if termW <= 0 || termH <= 0 {
		return content
	}
	return lipgloss.Place(termW, termH, lipgloss.Center, lipgloss.Center, content)
}

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// Avoid borders here: some terminals show background artifacts when nesting bordered
	// components inside a modal with a background color.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc/ctrl+g: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
