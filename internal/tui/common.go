package tui

import "fmt"

// viewState represents the currently active view.
type viewState int

const (
	viewClock viewState = iota
	viewReports
	viewSettings
)

var viewNames = []string{"Clock", "Reports", "Settings"}

// --- Messages ---

// tickMsg carries the machine generation it was scheduled under. A tick
// from an older generation belongs to a released timer and is dropped.
type tickMsg struct {
	gen uint64
}

type statusMsg struct {
	text    string
	isError bool
}

type clearStatusMsg struct {
	seq int
}

type exportDoneMsg struct {
	path string
}

type settingsSavedMsg struct{}

// --- Helpers ---

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}

func formatHours(mins int) string {
	return fmt.Sprintf("%.1fh", float64(mins)/60)
}
