package worker

import (
	"fmt"
	"strings"
	"time"
)

// Window is the maximum post age kept by a fetch.
type Window string

const (
	Day   Window = "day"
	Week  Window = "week"
	Month Window = "month"
)

// ParseWindow accepts day, week or month (case-insensitive).
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	switch w {
	case Day, Week, Month:
		return w, nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

// Duration returns the window length. A month is 30 days.
func (w Window) Duration() time.Duration {
	switch w {
	case Day:
		return 24 * time.Hour
	case Week:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}
