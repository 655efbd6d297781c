package statsui

import "github.com/charmbracelet/lipgloss"

// palette names the colors the stats screens use by role.
type palette struct {
	Text      lipgloss.Color
	TextSoft  lipgloss.Color
	TextMuted lipgloss.Color
	TextDim   lipgloss.Color
	Border    lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
}

var colors = palette{
	Text:      lipgloss.Color("#F0F0F0"),
	TextSoft:  lipgloss.Color("#B8B8B8"),
	TextMuted: lipgloss.Color("#8C8C8C"),
	TextDim:   lipgloss.Color("#6E6E6E"),
	Border:    lipgloss.Color("#4A4A4A"),
	Accent:    lipgloss.Color("#C89A3A"),
	Error:     lipgloss.Color("#FF4D4F"),
}

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true)
	activeTabStyle   = tabStyle.Foreground(colors.Text).Bold(true).BorderForeground(colors.Accent)
	inactiveTabStyle = tabStyle.Foreground(colors.TextSoft).BorderForeground(colors.Border)

	hintStyle  = lipgloss.NewStyle().Foreground(colors.TextDim)
	errorStyle = lipgloss.NewStyle().Foreground(colors.Error)
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(colors.Border)
	labelStyle = lipgloss.NewStyle().Foreground(colors.TextMuted)
	valueStyle = lipgloss.NewStyle().Foreground(colors.Text).Bold(true)
	tableStyle = lipgloss.NewStyle().Foreground(colors.TextSoft)
)
