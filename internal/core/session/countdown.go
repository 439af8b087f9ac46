package session

import (
	"strconv"
	"strings"
)

// FormatCountdown renders ms as at most three space-separated components,
// largest unit first, e.g. "1d 2h 5m" or "1m 30s". Non-positive input
// renders as "0s".
//
// Hours are kept once days are shown, minutes fill in until two components
// exist, and seconds only appear for sub-day durations with fewer than two
// components.
func FormatCountdown(ms int64) string {
	if ms <= 0 {
		return "0s"
	}

	total := ms / 1000
	days := total / 86400
	hours := total / 3600 % 24
	minutes := total / 60 % 60
	seconds := total % 60

	parts := make([]string, 0, 4)
	if days != 0 {
		parts = append(parts, strconv.FormatInt(days, 10)+"d")
	}
	if hours != 0 || days != 0 {
		parts = append(parts, strconv.FormatInt(hours, 10)+"h")
	}
	if minutes != 0 || len(parts) < 2 {
		parts = append(parts, strconv.FormatInt(minutes, 10)+"m")
	}
	if len(parts) < 2 && days == 0 {
		parts = append(parts, strconv.FormatInt(seconds, 10)+"s")
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, " ")
}
