package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/clock/internal/clock"
)

type clockModel struct {
	machine *clock.Machine
	width   int

	bar progress.Model
}

func newClockModel(m *clock.Machine) clockModel {
	return clockModel{
		machine: m,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (c *clockModel) setWidth(w int) {
	c.width = w
	c.bar.Width = max(10, min(w-16, 60))
}

// tickCmd schedules the next one-second tick for generation gen.
func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (c clockModel) update(msg tea.Msg) (clockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != c.machine.Generation() || !c.machine.Running() {
			return c, nil
		}
		c.machine.Tick()
		return c, tickCmd(msg.gen)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle):
			return c.toggle()
		case key.Matches(msg, keys.Reset):
			c.machine.Reset()
		case key.Matches(msg, keys.SessionUp):
			c.machine.AdjustLength(clock.TargetSession, 1)
		case key.Matches(msg, keys.SessionDown):
			c.machine.AdjustLength(clock.TargetSession, -1)
		case key.Matches(msg, keys.BreakUp):
			c.machine.AdjustLength(clock.TargetBreak, 1)
		case key.Matches(msg, keys.BreakDown):
			c.machine.AdjustLength(clock.TargetBreak, -1)
		}
	}
	return c, nil
}

func (c clockModel) toggle() (clockModel, tea.Cmd) {
	c.machine.ToggleRunning()
	if c.machine.Running() {
		return c, tickCmd(c.machine.Generation())
	}
	return c, nil
}

// release stops the countdown so no tick outlives the view.
func (c clockModel) release() {
	if c.machine.Running() {
		c.machine.ToggleRunning()
	}
}

func (c clockModel) view() string {
	w := c.width - 4
	s := c.machine.Snapshot()

	title := titleStyle.Render("25+5 Clock")

	lengths := lipgloss.JoinHorizontal(lipgloss.Top,
		c.renderLength("Break Length", s.BreakLength, "←/h  →/l"),
		"  ",
		c.renderLength("Session Length", s.SessionLength, "↓/j  ↑/k"),
	)

	phaseStyle := sessionStyle
	if s.Phase == clock.PhaseBreak {
		phaseStyle = breakStyle
	}
	phaseLabel := phaseStyle.Bold(true).Render(s.Phase.String())

	timeStyle := clockPausedStyle
	indicator := pausedStyle.Render("⏸ paused")
	if s.Running {
		timeStyle = clockRunningStyle
		indicator = runningStyle.Render("● running")
	}
	timeDisplay := timeStyle.Width(max(w-6, 5)).Render(clock.FormatDisplay(s.Remaining))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		lengths,
		"",
		phaseLabel,
		timeDisplay,
		c.bar.ViewAs(phaseProgress(s)),
		"",
		indicator,
	)

	controls := dimStyle.Render("space: start/pause  r: reset")
	if s.Running {
		controls = dimStyle.Render("space: pause  r: reset  (lengths locked while running)")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (c clockModel) renderLength(label string, mins int, hint string) string {
	value := valueStyle.Bold(true).Render(fmt.Sprintf("%d", mins))
	if c.machine.Running() {
		value = dimStyle.Bold(true).Render(fmt.Sprintf("%d", mins))
	}
	return lengthPanelStyle.Width(20).Render(
		lipgloss.JoinVertical(lipgloss.Center, label, value, dimStyle.Render(hint)),
	)
}

// phaseProgress is the elapsed fraction of the current phase.
func phaseProgress(s clock.State) float64 {
	total := s.LengthOf(s.Phase) * 60
	if total <= 0 {
		return 0
	}
	done := 1 - float64(s.Remaining)/float64(total)
	return max(0, min(1, done))
}
