package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. This makes split-pane rendering stable when using lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		ln := lines[i]
		// Fast path: avoid computing StringWidth on extremely long lines (can be slow).
		// If the raw string is huge, it's almost certainly visually wider than the pane;
		// cut it early so subsequent width computations are bounded.
		if width > 0 && len(ln) > 8192 {
			if width == 1 {
				ln = xansi.Cut(ln, 0, 1)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
		}

		w := xansi.StringWidth(ln)

		if w > width {
			if width <= 0 {
				ln = ""
			} else if width == 1 {
				ln = xansi.Cut(ln, 0, 1)
			} else {
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln = ln + strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

// clipLine truncates a single line to width columns (ANSI-aware), appending an
// ellipsis when content was cut.
func clipLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// padLine pads a single line with spaces to exactly width columns (ANSI-aware),
// truncating first if needed.
func padLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = clipLine(s, width)
	if w := xansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// titledBox draws a rounded-border pane with the title embedded in the top
// border line. width and height are outer dimensions; the content is padded
// and clipped to the interior. borderSt styles the border runes only, so the
// title and content keep their own styling.
func titledBox(width, height int, title, content string, borderSt lipgloss.Style) string {
	if width < 2 || height < 2 {
		return normalizePane(content, width, height)
	}
	b := lipgloss.RoundedBorder()
	innerW := width - 2
	innerH := height - 2

	title = clipLine(title, innerW)
	fill := innerW - xansi.StringWidth(title)
	if fill < 0 {
		fill = 0
	}
	top := borderSt.Render(b.TopLeft) + title + borderSt.Render(strings.Repeat(b.Top, fill)+b.TopRight)

	left := borderSt.Render(b.Left)
	right := borderSt.Render(b.Right)
	rows := strings.Split(normalizePane(content, innerW, innerH), "\n")
	for i, row := range rows {
		rows[i] = left + row + right
	}

	bottom := borderSt.Render(b.BottomLeft + strings.Repeat(b.Bottom, innerW) + b.BottomRight)

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(rows, "\n"))
	sb.WriteByte('\n')
	sb.WriteString(bottom)
	return sb.String()
}
