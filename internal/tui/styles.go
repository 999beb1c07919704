package tui

import "github.com/charmbracelet/lipgloss"

// Session is warm, break is cool. Everything else stays out of the way.
var (
	colorSession = lipgloss.Color("#E8554E")
	colorBreak   = lipgloss.Color("#3FB68B")
	colorRunning = lipgloss.Color("#9ECE6A")
	colorPaused  = lipgloss.Color("#E0AF68")
	colorError   = lipgloss.Color("#F7768E")
	colorFocus   = lipgloss.Color("#BB9AF7")
	colorText    = lipgloss.Color("#C0CAF5")
	colorDim     = lipgloss.Color("#565F89")
	colorBorder  = lipgloss.Color("#3B4261")
	colorValue   = lipgloss.Color("#7DCFFF")
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 2)

	tabActiveStyle = tabStyle.
			Bold(true).
			Foreground(colorFocus).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorFocus)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	focusPanelStyle = panelStyle.
			BorderForeground(colorFocus)

	lengthPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 2).
				Align(lipgloss.Center)

	// The countdown itself.
	clockRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorRunning).
				Align(lipgloss.Center)

	clockPausedStyle = clockRunningStyle.
				Foreground(colorPaused)

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	sessionStyle = lipgloss.NewStyle().Foreground(colorSession)
	breakStyle   = lipgloss.NewStyle().Foreground(colorBreak)
	runningStyle = lipgloss.NewStyle().Foreground(colorRunning)
	pausedStyle  = lipgloss.NewStyle().Foreground(colorPaused)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	valueStyle   = lipgloss.NewStyle().Foreground(colorValue)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	itemStyle   = lipgloss.NewStyle().Foreground(colorText)
)
