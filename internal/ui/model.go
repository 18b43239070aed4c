package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/betsim/internal/logger"
	"github.com/rovshanmuradov/betsim/internal/ui/component"
	"github.com/rovshanmuradov/betsim/internal/ui/style"
)

const (
	logLines     = 5
	tickInterval = 250 * time.Millisecond
)

// Model is the bubbletea model of the live simulation view.
type Model struct {
	msgs    <-chan tea.Msg
	logs    *logger.LogBuffer
	cancel  context.CancelFunc
	batches int
	trials  int

	progress progress.Model
	spark    *component.Sparkline
	current  int
	rows     []BatchDoneMsg
	done     *RunDoneMsg
	width    int
}

// NewModel builds the view. cancel stops the simulation when the user quits.
func NewModel(msgs <-chan tea.Msg, logs *logger.LogBuffer, batches, trials int, cancel context.CancelFunc) *Model {
	spark := component.NewSparkline(max(batches, 1)).SetColor(style.DefaultPalette().Win)
	return &Model{
		msgs:     msgs,
		logs:     logs,
		cancel:   cancel,
		batches:  batches,
		trials:   trials,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spark:    spark,
		current:  -1,
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts listening for simulator messages.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(Listen(m.msgs), tick())
}

// Update handles simulator messages and key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, min(60, msg.Width-20))
		return m, nil

	case BatchStartedMsg:
		m.current = msg.Batch
		return m, Listen(m.msgs)

	case BatchDoneMsg:
		m.rows = append(m.rows, msg)
		m.spark.Add(float64(msg.Wins))
		return m, Listen(m.msgs)

	case RunDoneMsg:
		m.done = &msg
		return m, nil

	case tickMsg:
		if m.done != nil {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

// Percent is the share of batches completed.
func (m *Model) Percent() float64 {
	if m.batches == 0 {
		return 1
	}
	return float64(len(m.rows)) / float64(m.batches)
}

// Finished reports whether the run has ended.
func (m *Model) Finished() bool {
	return m.done != nil
}

// View renders the screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(style.TitleStyle.Render("betsim"))
	b.WriteString(style.MutedStyle.Render(fmt.Sprintf("  %d batches x %d trials", m.batches, m.trials)))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.Percent()))
	b.WriteString(fmt.Sprintf("  %d/%d\n\n", len(m.rows), m.batches))

	b.WriteString(style.HeaderStyle.Render(fmt.Sprintf("%-7s %8s %8s", "Batch", "Wins", "Losses")))
	b.WriteString("\n")
	for _, r := range m.rows {
		b.WriteString(fmt.Sprintf("%-7d ", r.Batch+1))
		b.WriteString(style.WinStyle.Render(fmt.Sprintf("%8d", r.Wins)))
		b.WriteString(" ")
		b.WriteString(style.LossStyle.Render(fmt.Sprintf("%8d", r.Losses)))
		b.WriteString("\n")
	}
	if m.done == nil && m.current >= len(m.rows) {
		b.WriteString(style.MutedStyle.Render(fmt.Sprintf("%-7d running...", m.current+1)))
		b.WriteString("\n")
	}

	b.WriteString("\nWins per batch ")
	b.WriteString(m.spark.View())
	b.WriteString("\n")

	if m.done != nil {
		b.WriteString("\n")
		b.WriteString(m.summary())
		b.WriteString("\n")
	}

	if m.logs != nil {
		var lines []string
		for _, e := range m.logs.Recent(logLines) {
			lines = append(lines, fmt.Sprintf("%s %-5s %s", e.Timestamp.Format("15:04:05"), e.Level, e.Message))
		}
		if len(lines) > 0 {
			b.WriteString("\n")
			b.WriteString(style.MutedStyle.Render(strings.Join(lines, "\n")))
			b.WriteString("\n")
		}
	}

	b.WriteString(style.MutedStyle.Render("\nq: quit"))
	return b.String()
}

func (m *Model) summary() string {
	d := m.done
	if d.Err != nil {
		return style.ErrorStyle.Render("Stopped: " + d.Err.Error())
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Batches: %d", d.Batches),
		style.WinStyle.Render(fmt.Sprintf("Wins:    %d", d.Wins)),
		style.LossStyle.Render(fmt.Sprintf("Losses:  %d", d.Losses)),
		style.MutedStyle.Render(fmt.Sprintf("Seed %d, %s", d.Seed, d.Duration.Round(time.Millisecond))),
	)
	return style.PanelStyle.Render(body)
}
