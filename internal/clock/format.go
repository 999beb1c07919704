package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDisplay renders seconds as zero-padded MM:SS.
func FormatDisplay(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseDisplay is the inverse of FormatDisplay.
func ParseDisplay(s string) (int, error) {
	mm, ss, ok := strings.Cut(s, ":")
	if !ok || len(mm) != 2 || len(ss) != 2 {
		return 0, fmt.Errorf("parse display %q: want MM:SS", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("parse display %q: %w", s, err)
	}
	sec, err := strconv.Atoi(ss)
	if err != nil {
		return 0, fmt.Errorf("parse display %q: %w", s, err)
	}
	if m < 0 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("parse display %q: out of range", s)
	}
	return m*60 + sec, nil
}
