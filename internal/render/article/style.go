package article

import "github.com/charmbracelet/lipgloss"

var (
	cpMauve    = lipgloss.Color("#cba6f7")
	cpPeach    = lipgloss.Color("#fab387")
	cpYellow   = lipgloss.Color("#f9e2af")
	cpTeal     = lipgloss.Color("#94e2d5")
	cpBlue     = lipgloss.Color("#89b4fa")
	cpLavender = lipgloss.Color("#b4befe")
	cpSubtext0 = lipgloss.Color("#a6adc8")
	cpSubtext1 = lipgloss.Color("#bac2de")
	cpOverlay0 = lipgloss.Color("#6c7086")
	cpOverlay1 = lipgloss.Color("#7f849c")

	postTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(cpLavender)
	postMetaStyle    = lipgloss.NewStyle().Foreground(cpSubtext0)
	postTagStyle     = lipgloss.NewStyle().Foreground(cpTeal)
	postHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(cpLavender)
	postHeadingBars  = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(cpBlue),
		lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		lipgloss.NewStyle().Bold(true).Foreground(cpYellow),
	}
	postLinkStyle    = lipgloss.NewStyle().Foreground(cpBlue).Faint(true)
	postQuotePrefix  = lipgloss.NewStyle().Foreground(cpOverlay1).Render("│ ")
	postQuoteText    = lipgloss.NewStyle().Italic(true).Foreground(cpSubtext0)
	postCaptionStyle = lipgloss.NewStyle().Italic(true).Foreground(cpOverlay0).Faint(true)
	postCodeStyle    = lipgloss.NewStyle().Foreground(cpPeach)
	postImageLabel   = lipgloss.NewStyle().Foreground(cpMauve).Faint(true).Italic(true)
	postImageText    = lipgloss.NewStyle().Foreground(cpSubtext1).Italic(true)
)
