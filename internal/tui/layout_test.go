package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane(t *testing.T) {
	got := normalizePane("ab\ncdefgh", 4, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "ab  " {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[1] != "cde…" {
		t.Fatalf("line 1 = %q", lines[1])
	}
	if lines[2] != "    " {
		t.Fatalf("line 2 = %q", lines[2])
	}
}

func TestTitledBoxGeometry(t *testing.T) {
	box := titledBox(20, 5, "Tasks", "hello\nworld", lipgloss.NewStyle())
	lines := strings.Split(box, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 20 {
			t.Fatalf("line %d width = %d, want 20", i, w)
		}
	}
	if !strings.HasPrefix(lines[0], "╭Tasks") || !strings.HasSuffix(lines[0], "╮") {
		t.Fatalf("top border = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "│hello") || !strings.HasSuffix(lines[1], "│") {
		t.Fatalf("content row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "╰") || !strings.HasSuffix(lines[4], "╯") {
		t.Fatalf("bottom border = %q", lines[4])
	}
}

func TestTitledBoxClipsLongTitle(t *testing.T) {
	box := titledBox(10, 3, "A very long pane title", "x", lipgloss.NewStyle())
	top := strings.Split(box, "\n")[0]
	if w := xansi.StringWidth(top); w != 10 {
		t.Fatalf("top width = %d, want 10", w)
	}
	if !strings.Contains(top, "…") {
		t.Fatalf("long title should be clipped, got %q", top)
	}
}

func TestWrapWords(t *testing.T) {
	cases := []struct {
		in       string
		width    int
		maxLines int
		want     []string
	}{
		{"hello world", 11, 2, []string{"hello world"}},
		{"hello world", 5, 2, []string{"hello", "world"}},
		{"one two three four", 9, 2, []string{"one two", "three"}},
		{"", 10, 2, nil},
	}
	for _, tc := range cases {
		got := wrapWords(tc.in, tc.width, tc.maxLines)
		if len(got) != len(tc.want) {
			t.Fatalf("wrapWords(%q, %d, %d) = %v, want %v", tc.in, tc.width, tc.maxLines, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("wrapWords(%q) line %d = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}
