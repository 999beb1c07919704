package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/clock/internal/clock"
	"github.com/sadopc/clock/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Events     []jsonEvent `json:"events"`
}

type jsonEvent struct {
	ID             int64  `json:"id"`
	At             string `json:"at"`
	Kind           string `json:"kind"`
	Phase          string `json:"phase"`
	CompletedPhase string `json:"completed_phase,omitempty"`
	Minutes        int    `json:"minutes,omitempty"`
	RemainingSec   int    `json:"remaining_seconds"`
	Remaining      string `json:"remaining"`
	SessionLength  int    `json:"session_length"`
	BreakLength    int    `json:"break_length"`
}

func ToJSON(events []store.Event, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(events),
		Events:     []jsonEvent{},
	}

	for _, e := range events {
		export.Events = append(export.Events, jsonEvent{
			ID:             e.ID,
			At:             e.At.Local().Format(time.RFC3339),
			Kind:           e.Kind,
			Phase:          e.Phase,
			CompletedPhase: e.CompletedPhase,
			Minutes:        e.Minutes,
			RemainingSec:   e.Remaining,
			Remaining:      clock.FormatDisplay(e.Remaining),
			SessionLength:  e.SessionLength,
			BreakLength:    e.BreakLength,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
