package style

import "github.com/charmbracelet/lipgloss"

var (
	Cyan    = lipgloss.Color("#00E5FF")
	Magenta = lipgloss.Color("#FF1B6B")
	Yellow  = lipgloss.Color("#FFB500")
	Green   = lipgloss.Color("#2AFFAA")
	Red     = lipgloss.Color("#FF5555")

	Base01 = lipgloss.Color("#6C7280") // muted text
	Base2  = lipgloss.Color("#ECEFF4") // primary text
)

// Palette groups the colors the simulator view uses.
type Palette struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Win       lipgloss.Color
	Loss      lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
}

// DefaultPalette returns the default color palette
func DefaultPalette() Palette {
	return Palette{
		Primary:   Cyan,
		Accent:    Magenta,
		Win:       Green,
		Loss:      Red,
		Warning:   Yellow,
		Text:      Base2,
		TextMuted: Base01,
	}
}

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	MutedStyle  = lipgloss.NewStyle().Foreground(Base01)
	WinStyle    = lipgloss.NewStyle().Foreground(Green)
	LossStyle   = lipgloss.NewStyle().Foreground(Red)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(Red)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Base2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Base01)
	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Magenta).
			Padding(0, 1)
)
