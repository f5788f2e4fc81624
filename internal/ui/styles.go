package ui

import (
	"mynotion/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized from theme configuration.
type Styles struct {
	ColorPrimary lipgloss.Color
	ColorAccent  lipgloss.Color
	ColorMuted   lipgloss.Color
	ColorDanger  lipgloss.Color
	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color

	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	DoneStyle     lipgloss.Style
	PendingStyle  lipgloss.Style
	SelectedStyle lipgloss.Style
	CheckboxDone  string
	CheckboxTodo  string

	PriorityHighStyle   lipgloss.Style
	PriorityMediumStyle lipgloss.Style
	PriorityLowStyle    lipgloss.Style
	OverdueStyle        lipgloss.Style

	StreakStyle   lipgloss.Style
	GridDoneStyle lipgloss.Style
	GridTodoStyle lipgloss.Style
	PinnedStyle   lipgloss.Style
	TagStyle      lipgloss.Style
	VisitStyle    lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style

	InputPromptStyle lipgloss.Style
	StatLabelStyle   lipgloss.Style
	StatValueStyle   lipgloss.Style
	BarStyle         lipgloss.Style
	QuotaWarnStyle   lipgloss.Style
}

// NewStyles builds the style set from theme configuration, falling back to
// the built-in palette for unset colors.
func NewStyles(theme config.ThemeConfig) *Styles {
	s := &Styles{
		ColorPrimary: lipgloss.Color(orDefault(theme.Primary, "#8B5CF6")),
		ColorAccent:  lipgloss.Color(orDefault(theme.Accent, "#06B6D4")),
		ColorMuted:   lipgloss.Color(orDefault(theme.Muted, "#6B7280")),
		ColorDanger:  lipgloss.Color("#EF4444"),
		ColorSuccess: lipgloss.Color("#10B981"),
		ColorWarning: lipgloss.Color("#F59E0B"),
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorPrimary)
	s.DateStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)
	s.PaneFocusedStyle = s.PaneStyle.
		BorderForeground(s.ColorPrimary)
	s.PaneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorAccent)

	s.DoneStyle = lipgloss.NewStyle().Foreground(s.ColorMuted).Strikethrough(true)
	s.PendingStyle = lipgloss.NewStyle()
	s.SelectedStyle = lipgloss.NewStyle().Foreground(s.ColorPrimary).Bold(true)
	s.CheckboxDone = "[x]"
	s.CheckboxTodo = "[ ]"

	s.PriorityHighStyle = lipgloss.NewStyle().Foreground(s.ColorDanger).Bold(true)
	s.PriorityMediumStyle = lipgloss.NewStyle().Foreground(s.ColorWarning)
	s.PriorityLowStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.OverdueStyle = lipgloss.NewStyle().Foreground(s.ColorDanger)

	s.StreakStyle = lipgloss.NewStyle().Foreground(s.ColorWarning)
	s.GridDoneStyle = lipgloss.NewStyle().Foreground(s.ColorSuccess)
	s.GridTodoStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.PinnedStyle = lipgloss.NewStyle().Foreground(s.ColorWarning)
	s.TagStyle = lipgloss.NewStyle().Foreground(s.ColorAccent)
	s.VisitStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)

	s.HelpStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.HelpKeyStyle = lipgloss.NewStyle().Foreground(s.ColorAccent)
	s.StatusStyle = lipgloss.NewStyle().Foreground(s.ColorSuccess)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.ColorDanger)

	s.InputPromptStyle = lipgloss.NewStyle().Foreground(s.ColorPrimary)
	s.StatLabelStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.StatValueStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorAccent)
	s.BarStyle = lipgloss.NewStyle().Foreground(s.ColorPrimary)
	s.QuotaWarnStyle = lipgloss.NewStyle().Foreground(s.ColorWarning).Bold(true)

	return s
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
