package store

import (
	"fmt"
	"strings"
	"time"
)

func (s *Store) RecordEvent(e Event) (*Event, error) {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO events (kind, phase, completed_phase, session_length, break_length, remaining, minutes, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Kind, e.Phase, e.CompletedPhase, e.SessionLength, e.BreakLength, e.Remaining, e.Minutes,
		at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("record event: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEvent(id)
}

func (s *Store) GetEvent(id int64) (*Event, error) {
	e := &Event{}
	var at string
	err := s.db.QueryRow(
		`SELECT id, kind, phase, completed_phase, session_length, break_length, remaining, minutes, at
		 FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Kind, &e.Phase, &e.CompletedPhase, &e.SessionLength, &e.BreakLength, &e.Remaining, &e.Minutes, &at)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	e.At, _ = time.Parse(time.RFC3339, at)
	return e, nil
}

// ListEvents returns events newest first.
func (s *Store) ListEvents(f EventFilter) ([]Event, error) {
	var (
		where []string
		args  []any
	)
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, f.Kind)
	}
	if f.From != nil {
		where = append(where, "at >= ?")
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		where = append(where, "at < ?")
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}

	q := `SELECT id, kind, phase, completed_phase, session_length, break_length, remaining, minutes, at FROM events`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY at DESC, id DESC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var at string
		if err := rows.Scan(&e.ID, &e.Kind, &e.Phase, &e.CompletedPhase, &e.SessionLength, &e.BreakLength, &e.Remaining, &e.Minutes, &at); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetDailySummary aggregates completed phases per UTC day in [from, to).
func (s *Store) GetDailySummary(from, to time.Time) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT substr(at, 1, 10) AS day,
		       SUM(CASE WHEN completed_phase = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN completed_phase = ? THEN minutes ELSE 0 END),
		       SUM(CASE WHEN completed_phase = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN completed_phase = ? THEN minutes ELSE 0 END)
		FROM events
		WHERE kind = ? AND at >= ? AND at < ?
		GROUP BY day
		ORDER BY day`,
		PhaseSession, PhaseSession, PhaseBreak, PhaseBreak,
		KindPhaseComplete, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()

	var out []DailySummary
	for rows.Next() {
		var d DailySummary
		if err := rows.Scan(&d.Date, &d.SessionCount, &d.SessionMinutes, &d.BreakCount, &d.BreakMinutes); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountCompleted counts completed phases of the given kind in [from, to).
func (s *Store) CountCompleted(phase string, from, to time.Time) (count int, minutes int, err error) {
	err = s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(minutes), 0)
		FROM events
		WHERE kind = ? AND completed_phase = ?
		  AND at >= ? AND at < ?`,
		KindPhaseComplete, phase,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&count, &minutes)
	return
}
