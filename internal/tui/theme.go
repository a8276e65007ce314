package tui

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"strata-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor where possible and only apply "faint" styling
// on dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Common semantic colors used across the TUI.
var (
	colorMuted lipgloss.TerminalColor = ac("240", "243") // dark-ish gray on light; soft gray on dark

	// Used for headings/breadcrumbs and other secondary chrome.
	colorChromeMutedFg lipgloss.TerminalColor = ac("240", "245")

	// Make the selection highlight prominent against the surface background.
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	// Used for "selected" borders (board cards): very dark on light terminals, very bright on dark.
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	// Used for unselected borders (board cards): softer so selection stands out.
	colorCardBorder lipgloss.TerminalColor = ac("250", "243")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	// Slightly elevated surface for controls/inputs so they remain visible on light terminals.
	colorControlBg lipgloss.TerminalColor = ac("252", "235")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue
	// Foreground for text rendered on top of colorAccent backgrounds (e.g. input cursor).
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")

	// Card metadata (small secondary labels inside board cards).
	colorCardMetaFg lipgloss.TerminalColor = ac("238", "250")

	// Status-line feedback.
	colorError lipgloss.TerminalColor = ac("160", "196") // red
	colorOK    lipgloss.TerminalColor = ac("28", "40")   // green
	colorWarn  lipgloss.TerminalColor = ac("130", "214") // orange

	// Modal colors track the surface.
	colorModalSurfaceBg = colorSurfaceBg
	colorModalSurfaceFg = colorSurfaceFg
	colorModalHeaderBg  = colorControlBg
	colorModalHeaderFg  = colorSurfaceFg
)

// Per-kind colors. Gold needs a near-black companion foreground when used as a
// background (board cards), otherwise the label becomes unreadable.
var (
	colorKindProduct   lipgloss.TerminalColor = ac("27", "33")            // blue
	colorKindEpic      lipgloss.TerminalColor = ac("#005000", "#00a000")  // dark green
	colorKindTask      lipgloss.TerminalColor = ac("#b8860b", "#ffd700")  // gold
	colorKindSubtask   lipgloss.TerminalColor = ac("#720000", "#d75f5f")  // dark red
	colorKindMilestone lipgloss.TerminalColor = ac("#563c5c", "#af87d7")  // purple
	colorOnGold        lipgloss.TerminalColor = lipgloss.Color("#141414") // near-black on gold
)

func kindColor(k model.Kind) lipgloss.TerminalColor {
	switch k {
	case model.KindProduct:
		return colorKindProduct
	case model.KindEpic:
		return colorKindEpic
	case model.KindTask:
		return colorKindTask
	case model.KindSubtask:
		return colorKindSubtask
	case model.KindMilestone:
		return colorKindMilestone
	}
	return colorSurfaceFg
}

func statusColor(s model.Status) lipgloss.TerminalColor {
	switch s {
	case model.StatusOpen:
		return colorSurfaceFg
	case model.StatusInProgress:
		return colorWarn
	case model.StatusDone:
		return colorOK
	}
	return colorSurfaceFg
}

func priorityColor(p *model.Priority) lipgloss.TerminalColor {
	if p == nil {
		return colorMuted
	}
	switch *p {
	case model.PriorityMustHave:
		return colorError
	case model.PriorityNiceToHave:
		return colorWarn
	case model.PriorityCutFirst:
		return colorMuted
	}
	return colorMuted
}

func urgencyColor(u *model.Urgency) lipgloss.TerminalColor {
	if u == nil {
		return colorMuted
	}
	switch *u {
	case model.UrgencyUrgentImportant:
		return colorError
	case model.UrgencyUrgentNotImportant:
		return colorWarn
	case model.UrgencyNotUrgentImportant:
		return colorAccent
	case model.UrgencyNotUrgentNotImportant:
		return colorMuted
	}
	return colorMuted
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleKind(k model.Kind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(kindColor(k))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is useful for
// non-interactive CLI output but can accidentally disable colors in a TUI. For the TUI,
// we only honor NO_COLOR and otherwise follow the terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	// Start from termenv's best guess.
	profile := termenv.ColorProfile()

	// Heuristics:
	// - If TERM/COLORTERM indicate stronger support than the detector reports, trust
	//   the env. This helps terminals like macOS Terminal.app where color probing
	//   can under-report (leading to degraded "gray" colors).
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		} else if profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Some terminals don't reliably report their background, which can cause
// lipgloss.AdaptiveColor to pick the wrong variant (e.g. dark palette on a light theme).
//
// Priority:
// 1) STRATA_TUI_THEME=light|dark|auto
// 2) STRATA_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic (common in terminals; format like "15;0" = fg;bg)
func applyThemePreference() {
	if v := strings.TrimSpace(os.Getenv("STRATA_TUI_THEME")); v != "" {
		switch strings.ToLower(v) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		case "auto":
			// fallthrough to heuristics/default
		default:
			// Unknown value: ignore.
		}
	}

	if v := strings.TrimSpace(os.Getenv("STRATA_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	// Heuristic: COLORFGBG is often "fg;bg" (sometimes more segments). Use last segment as bg.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			// Treat "lighter" backgrounds as non-dark. This is heuristic, but better than
			// consistently choosing the wrong palette.
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}

	// macOS Terminal.app often doesn't set COLORFGBG, and background probing can be unreliable.
	// As a fallback, use the OS appearance (Light vs Dark) when available.
	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
			return
		}
	}
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// `defaults read -g AppleInterfaceStyle` prints "Dark" in dark mode and returns exit status 1
	// in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}

// applyTUIPreferences applies all env-driven appearance preferences. Call once
// before constructing a Bubble Tea program.
func applyTUIPreferences() {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()
}
