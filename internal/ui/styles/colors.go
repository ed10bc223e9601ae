// Package styles contains Lip Gloss colors and helpers shared by the screens.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	AccentColor        = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}
	HighlightColor     = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	CorrectColor       = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}
	IncorrectColor     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#F8FAFC"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#475569"}
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	Text     = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	Muted    = lipgloss.NewStyle().Foreground(TextMutedColor)
	Emphasis = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	Error    = lipgloss.NewStyle().Foreground(IncorrectColor)

	// Button is an unselected choice; Selected marks the active one.
	Button    = lipgloss.NewStyle().Padding(0, 2).Foreground(TextPrimaryColor)
	Selected  = Button.Bold(true).Foreground(AccentColor).Underline(true)
	Correct   = Button.Bold(true).Foreground(CorrectColor)
	Incorrect = Button.Bold(true).Foreground(IncorrectColor)
	Disabled  = Button.Foreground(TextMutedColor)
)
