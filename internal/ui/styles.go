package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all command output.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for section banners.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// RuleStyle draws the lines around a banner.
	RuleStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// SubtitleStyle is for secondary details such as paths.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for completed steps.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// WarningStyle is for partial results.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// ErrorStyle is for failures.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// IDStyle is for tool ids and command names.
	IDStyle = lipgloss.NewStyle().
		Foreground(ColorHighlight)
)

const bannerWidth = 50

// Banner renders a title between two horizontal rules.
func Banner(title string) string {
	rule := RuleStyle.Render(strings.Repeat("=", bannerWidth))
	return rule + "\n" + TitleStyle.Render(title) + "\n" + rule
}

// Section renders a lighter heading for a phase inside a command.
func Section(title string) string {
	rule := RuleStyle.Render(strings.Repeat("━", 36))
	return rule + "\n" + TitleStyle.Render(title) + "\n" + rule
}

// Status labels used by status and check output.
const (
	StatusOK   = "OK"
	StatusMiss = "MISS"
	StatusWarn = "WARN"
	StatusFail = "FAIL"
)

// Tag renders a fixed-width status tag such as "[ OK ]".
func Tag(status string) string {
	text := fmt.Sprintf("[%-4s]", centre(status, 4))
	switch status {
	case StatusOK:
		return SuccessStyle.Render(text)
	case StatusWarn, StatusMiss:
		return WarningStyle.Render(text)
	case StatusFail:
		return ErrorStyle.Render(text)
	default:
		return text
	}
}

// Summary renders the one-word outcome of a tool install.
func Summary(ok bool) string {
	if ok {
		return SuccessStyle.Render("OK")
	}
	return WarningStyle.Render("PARTIAL")
}

func centre(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := width - len(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
