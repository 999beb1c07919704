package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/clock/internal/clock"
	"github.com/sadopc/clock/internal/store"
)

func ToCSV(events []store.Event, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "At", "Kind", "Phase", "Completed", "Minutes", "Remaining", "Session (min)", "Break (min)"}); err != nil {
		return err
	}

	for _, e := range events {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.At.Local().Format(time.RFC3339),
			e.Kind,
			e.Phase,
			e.CompletedPhase,
			strconv.Itoa(e.Minutes),
			clock.FormatDisplay(e.Remaining),
			strconv.Itoa(e.SessionLength),
			strconv.Itoa(e.BreakLength),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
