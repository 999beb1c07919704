package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/clock/internal/store"
)

type reportMode int

const (
	reportDaily reportMode = iota
	reportWeekly
)

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	mode      reportMode
	summaries []store.DailySummary
	today     todayStats
	offset    int // weeks or 7-day blocks offset from today (0 = current)
	now       func() time.Time

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		now:   time.Now,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type todayStats struct {
	sessions int
	minutes  int
}

type reportsDataMsg struct {
	summaries []store.DailySummary
	today     todayStats
	err       error
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		summaries, err := r.store.GetDailySummary(from, to)
		if err != nil {
			return reportsDataMsg{err: err}
		}

		now := r.now().UTC()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		var today todayStats
		today.sessions, today.minutes, err = r.store.CountCompleted(store.PhaseSession, start, start.AddDate(0, 0, 1))
		return reportsDataMsg{summaries: summaries, today: today, err: err}
	}
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := r.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch r.mode {
	case reportWeekly:
		// Start of current week (Monday)
		weekday := today.Weekday()
		if weekday == time.Sunday {
			weekday = 7
		}
		startOfWeek := today.AddDate(0, 0, -int(weekday-time.Monday))
		startOfWeek = startOfWeek.AddDate(0, 0, -7*r.offset)
		return startOfWeek, startOfWeek.AddDate(0, 0, 7)
	default:
		// Daily: last 7 days
		end := today.AddDate(0, 0, 1-7*r.offset)
		start := end.AddDate(0, 0, -7)
		return start, end
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		if msg.err != nil {
			return r, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Report error: %v", msg.err), isError: true}
			}
		}
		r.summaries = msg.summaries
		r.today = msg.today
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Enter):
			if r.mode == reportDaily {
				r.mode = reportWeekly
			} else {
				r.mode = reportDaily
			}
			r.offset = 0
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()
	byDate := make(map[string]store.DailySummary, len(r.summaries))
	for _, s := range r.summaries {
		byDate[s.Date] = s
	}

	sessionBar := lipgloss.NewStyle().Foreground(colorSession)
	breakBar := lipgloss.NewStyle().Foreground(colorBreak)

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		s := byDate[d.Format("2006-01-02")]
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: "Session", Value: float64(s.SessionMinutes) / 60, Style: sessionBar},
				{Name: "Break", Value: float64(s.BreakMinutes) / 60, Style: breakBar},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) totals() (sessions, sessionMins, breaks, breakMins int) {
	for _, s := range r.summaries {
		sessions += s.SessionCount
		sessionMins += s.SessionMinutes
		breaks += s.BreakCount
		breakMins += s.BreakMinutes
	}
	return
}

func (r reportsModel) view() string {
	w := r.width - 4

	dailyTab := tabStyle.Render("Daily")
	weeklyTab := tabStyle.Render("Weekly")
	if r.mode == reportDaily {
		dailyTab = tabActiveStyle.Render("Daily")
	} else {
		weeklyTab = tabActiveStyle.Render("Weekly")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, dailyTab, weeklyTab)

	from, to := r.dateRange()
	dateLabel := dimStyle.Render(fmt.Sprintf("%s - %s", from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	today := dimStyle.Render("  Today: ") + valueStyle.Render(fmt.Sprintf("%d sessions, %s", r.today.sessions, formatMinutes(r.today.minutes)))
	legend := "  " + sessionStyle.Render("●") + " Session  " + breakStyle.Render("●") + " Break"
	nav := dimStyle.Render("  ←/→: navigate  enter: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, today, "", r.chart.View(), "", legend, "", r.renderSummaryTable(w), "", nav,
		),
	)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.summaries) == 0 {
		return dimStyle.Render("  No completed sessions for this period")
	}

	var rows []string
	rows = append(rows, dimStyle.Render(fmt.Sprintf("  %-12s %9s %9s %7s %9s", "Date", "Sessions", "Focus", "Breaks", "Rest")))
	rows = append(rows, dimStyle.Render("  "+strings.Repeat("─", min(w-6, 50))))

	for _, s := range r.summaries {
		rows = append(rows, fmt.Sprintf("  %-12s %9d %9s %7d %9s",
			s.Date, s.SessionCount, formatMinutes(s.SessionMinutes), s.BreakCount, formatMinutes(s.BreakMinutes),
		))
	}

	sessions, sessionMins, breaks, breakMins := r.totals()
	rows = append(rows, dimStyle.Render("  "+strings.Repeat("─", min(w-6, 50))))
	rows = append(rows, valueStyle.Render(fmt.Sprintf("  %-12s %9d %9s %7d %9s",
		"Total", sessions, formatHours(sessionMins), breaks, formatHours(breakMins),
	)))

	return strings.Join(rows, "\n")
}
