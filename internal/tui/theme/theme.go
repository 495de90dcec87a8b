package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title       lipgloss.Style
	ModePill    lipgloss.Style
	Section     lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style
	StateDone   lipgloss.Style
	StyleTag    lipgloss.Style
	OptionOn    lipgloss.Style
	OptionOff   lipgloss.Style
	ResetHint   lipgloss.Style
	SearchMatch lipgloss.Style
	ImageTitle  lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:    lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),
		StateDone:   lipgloss.NewStyle().Foreground(cpLavender),
		StyleTag:    lipgloss.NewStyle().Foreground(cpSubtext0),
		OptionOn:    lipgloss.NewStyle().Bold(true).Foreground(cpSurface0).Background(cpRosewater).Padding(0, 1),
		OptionOff:   lipgloss.NewStyle().Foreground(cpSubtext1).Padding(0, 1),
		ResetHint:   lipgloss.NewStyle().Italic(true).Foreground(cpYellow),
		SearchMatch: lipgloss.NewStyle().Underline(true),
		ImageTitle:  lipgloss.NewStyle().Bold(true).Foreground(cpText),
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}

// RenderOption renders one entry of the style filter bar.
func (t Theme) RenderOption(label string, selected bool) string {
	if selected {
		return t.OptionOn.Render(label)
	}
	return t.OptionOff.Render(label)
}
