package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/sadopc/clock/internal/clock"
	"github.com/sadopc/clock/internal/config"
	"github.com/sadopc/clock/internal/export"
	"github.com/sadopc/clock/internal/notify"
	"github.com/sadopc/clock/internal/store"
)

// Options wires the App to its collaborators.
type Options struct {
	Store      *store.Store
	Config     config.Config
	ConfigPath string
	Logger     *log.Logger
	ExportDir  string // defaults to the home directory
}

// sinkErrors collects errors raised inside notification sinks until the
// next update can show them.
type sinkErrors struct {
	errs []error
}

func (s *sinkErrors) add(err error) { s.errs = append(s.errs, err) }

func (s *sinkErrors) take() []error {
	out := s.errs
	s.errs = nil
	return out
}

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	cfg       *config.Config
	logger    *log.Logger
	exportDir string
	width     int
	height    int

	machine *clock.Machine
	queue   *notify.Queue
	sinkErr *sinkErrors

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	clock    clockModel
	reports  reportsModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
	statusSeq int
}

func NewApp(opts Options) App {
	h := help.New()
	h.ShowAll = false

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cfg := opts.Config

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir, _ = os.UserHomeDir()
	}

	queue := &notify.Queue{}
	errs := &sinkErrors{}
	history := notify.NewHistory(opts.Store, func(err error) {
		logger.Error("history write failed", "err", err)
		errs.add(err)
	})
	machine := clock.New(notify.Multi(
		queue,
		notify.NewLogger(logger),
		notify.When(func() bool { return cfg.History }, history),
	))

	return App{
		store:      opts.Store,
		cfg:        &cfg,
		logger:     logger,
		exportDir:  exportDir,
		machine:    machine,
		queue:      queue,
		sinkErr:    errs,
		activeView: viewClock,
		clock:      newClockModel(machine),
		reports:    newReportsModel(opts.Store),
		settings:   newSettingsModel(&cfg, opts.ConfigPath),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle("25+5 Clock")
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.clock.setWidth(a.width)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			a.clock.release()
			a.queue.Drain()
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewClock
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		// Ticks always go to the clock, whatever view is active.
		var cmd tea.Cmd
		a.clock, cmd = a.clock.update(msg)
		return a.flushEvents(cmd)

	case statusMsg:
		return a.setStatus(msg.text, msg.isError, a.toastDuration())

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
			a.statusErr = false
		}
		return a, nil

	case exportDoneMsg:
		a.exportPicking = false
		return a.setStatus("Exported to "+msg.path, false, 2*a.toastDuration())

	case settingsSavedMsg:
		a.logger.SetLevel(a.cfg.Level())
		a.logger.Info("settings saved", "bell", a.cfg.Bell, "history", a.cfg.History)
		return a.setStatus("Settings saved", false, a.toastDuration())
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewClock:
		a.clock, cmd = a.clock.update(msg)
		return a.flushEvents(cmd)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

// flushEvents turns the machine's pending events into toasts.
func (a App) flushEvents(cmd tea.Cmd) (App, tea.Cmd) {
	cmds := []tea.Cmd{cmd}
	for _, e := range a.queue.Drain() {
		text := notify.Message(e)
		d := a.toastDuration()
		switch e.Kind {
		case clock.EventReset:
			d *= 2
		case clock.EventPhaseComplete:
			d *= 3
			if e.AudioCue && a.cfg.Bell {
				text += " \a"
			}
		}
		var c tea.Cmd
		a, c = a.setStatus(text, false, d)
		cmds = append(cmds, c)
	}
	for _, err := range a.sinkErr.take() {
		var c tea.Cmd
		a, c = a.setStatus(fmt.Sprintf("History error: %v", err), true, 2*a.toastDuration())
		cmds = append(cmds, c)
	}
	return a, tea.Batch(cmds...)
}

// setStatus shows a toast that clears itself after d.
func (a App) setStatus(text string, isError bool, d time.Duration) (App, tea.Cmd) {
	a.statusSeq++
	a.status = text
	a.statusErr = isError
	seq := a.statusSeq
	return a, tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (a App) toastDuration() time.Duration {
	return time.Duration(max(1, a.cfg.ToastSeconds)) * time.Second
}

func (a App) isFormActive() bool {
	if a.activeView == viewSettings {
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	if a.activeView == viewReports {
		return a.reports.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewClock:
		content = a.clock.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, tabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorFocus).Render("clock")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = dimStyle.Render(" " + a.status)
		}
	}

	// Countdown indicator, visible from every view.
	s := a.machine.Snapshot()
	timerInfo := ""
	if s.Running {
		timerInfo = runningStyle.Render(" ● " + s.Phase.String() + " " + clock.FormatDisplay(s.Remaining))
	} else if a.activeView != viewClock {
		timerInfo = pausedStyle.Render(" ⏸ " + s.Phase.String() + " " + clock.FormatDisplay(s.Remaining))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export History"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := itemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = cursorStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "", dimStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return focusPanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	s, dir := a.store, a.exportDir
	return func() tea.Msg {
		events, err := s.ListEvents(store.EventFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		dateStr := time.Now().Format("2006-01-02")
		if format == 0 {
			path := filepath.Join(dir, fmt.Sprintf("clock-export-%s.csv", dateStr))
			if err := export.ToCSV(events, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}

		path := filepath.Join(dir, fmt.Sprintf("clock-export-%s.json", dateStr))
		if err := export.ToJSON(events, path); err != nil {
			return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
