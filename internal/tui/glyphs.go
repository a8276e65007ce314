package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (selection markers,
// separators, arrows). This helps on terminals/fonts that don't render some
// glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STRATA_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphArrowLeft() string {
	if glyphs() == glyphSetASCII {
		return "<-"
	}
	return "←"
}

func glyphArrowUp() string {
	if glyphs() == glyphSetASCII {
		return "^"
	}
	return "↑"
}

func glyphArrowDown() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "↓"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphPointer() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "►"
}

func glyphScrollUp() string {
	if glyphs() == glyphSetASCII {
		return "^"
	}
	return "▲"
}

func glyphScrollDown() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▼"
}
