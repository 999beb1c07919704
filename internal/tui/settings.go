package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/clock/internal/config"
)

type settingsModel struct {
	cfg    *config.Config
	path   string
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	bell         *bool
	history      *bool
	toastSeconds *string
	logLevel     *string
}

func newSettingsModel(cfg *config.Config, path string) settingsModel {
	bell, history := false, false
	toast, level := "", ""
	return settingsModel{
		cfg:          cfg,
		path:         path,
		bell:         &bell,
		history:      &history,
		toastSeconds: &toast,
		logLevel:     &level,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.bell = s.cfg.Bell
	*s.history = s.cfg.History
	*s.toastSeconds = strconv.Itoa(s.cfg.ToastSeconds)
	*s.logLevel = s.cfg.LogLevel

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Ring the bell when a phase ends").Value(s.bell),
			huh.NewInput().Title("Toast duration (seconds)").
				Validate(validateToastSeconds).
				Value(s.toastSeconds),
		).Title("Notifications"),
		huh.NewGroup(
			huh.NewConfirm().Title("Record history").Value(s.history),
			huh.NewSelect[string]().Title("Log level").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).Value(s.logLevel),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validateToastSeconds(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 30 {
		return fmt.Errorf("enter a number between 1 and 30")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Back) {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s, s.save()
	}

	return s, cmd
}

// save applies the form values to the shared config and writes it out.
func (s settingsModel) save() tea.Cmd {
	next := *s.cfg
	next.Bell = *s.bell
	next.History = *s.history
	if n, err := strconv.Atoi(*s.toastSeconds); err == nil {
		next.ToastSeconds = n
	}
	next.LogLevel = *s.logLevel

	*s.cfg = next
	path := s.path
	return func() tea.Msg {
		if err := config.Save(path, next); err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		return settingsSavedMsg{}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	rows := []string{title, ""}
	for _, kv := range s.rows() {
		label := lipgloss.NewStyle().Width(24).Render(kv[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, valueStyle.Render(kv[1])))
	}
	rows = append(rows, "", dimStyle.Render("  "+s.path), "", dimStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) rows() [][2]string {
	return [][2]string{
		{"bell", onOff(s.cfg.Bell)},
		{"history", onOff(s.cfg.History)},
		{"toast_seconds", fmt.Sprintf("%d s", s.cfg.ToastSeconds)},
		{"log_level", s.cfg.LogLevel},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
