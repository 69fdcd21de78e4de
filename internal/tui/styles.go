package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	AccentTeal    = lipgloss.Color("#00F0FF")
	AccentMagenta = lipgloss.Color("#FF00E5")
	Muted         = lipgloss.Color("#8A8F98")
	Failure       = lipgloss.Color("#FF6B6B")
	Border        = lipgloss.Color("#333333")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentTeal).
			Padding(0, 1)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(Border).
			Padding(0, 1).
			MarginTop(1)

	SectionSelectedStyle = SectionStyle.
				BorderForeground(AccentTeal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentMagenta)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(AccentTeal)

	ItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	BadgeStyle = lipgloss.NewStyle().
			Foreground(AccentTeal)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Failure).
			Faint(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1).
			Padding(0, 1)
)
