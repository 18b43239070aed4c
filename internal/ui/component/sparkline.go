package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/betsim/internal/ui/style"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline draws a one-line chart of the last width values.
type Sparkline struct {
	data  []float64
	width int
	color lipgloss.Color
}

// NewSparkline creates an empty sparkline.
func NewSparkline(width int) *Sparkline {
	return &Sparkline{width: width, color: style.DefaultPalette().Primary}
}

// Add appends a point and drops the oldest once width is exceeded.
func (s *Sparkline) Add(v float64) *Sparkline {
	s.data = append(s.data, v)
	if len(s.data) > s.width {
		s.data = s.data[len(s.data)-s.width:]
	}
	return s
}

// SetColor sets the foreground color.
func (s *Sparkline) SetColor(c lipgloss.Color) *Sparkline {
	s.color = c
	return s
}

// Len returns the number of points held.
func (s *Sparkline) Len() int {
	return len(s.data)
}

// Blocks renders the chart without styling, padded to width.
func (s *Sparkline) Blocks() string {
	var b strings.Builder
	if len(s.data) > 0 {
		lo, hi := s.data[0], s.data[0]
		for _, v := range s.data {
			lo = min(lo, v)
			hi = max(hi, v)
		}
		for _, v := range s.data {
			idx := len(sparkChars) / 2
			if hi > lo {
				idx = int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
			}
			b.WriteRune(sparkChars[idx])
		}
	}
	for i := len(s.data); i < s.width; i++ {
		b.WriteRune(' ')
	}
	return b.String()
}

// View renders the styled chart.
func (s *Sparkline) View() string {
	return lipgloss.NewStyle().Foreground(s.color).Render(s.Blocks())
}
