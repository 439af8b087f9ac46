// Package session classifies voting periods relative to an instant and
// renders countdowns for display.
package session

import (
	"strings"
	"time"
)

// Phase is a voting period's relation to the reference instant.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseLive     Phase = "live"
	PhaseClosed   Phase = "closed"
)

// Timing is derived on every query and never stored.
//
// CountdownMs is the time until the next boundary while upcoming or live.
// For a closed period it is the time elapsed since the end, not zero;
// callers that display it as a countdown must account for that.
type Timing struct {
	Phase       Phase `json:"phase"`
	CountdownMs int64 `json:"countdownMs"`
}

// Window is a period expressed with textual ISO-8601 timestamps.
type Window struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

var closed = Timing{Phase: PhaseClosed}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Resolve classifies the period [start, end] against now. A zero start or
// end yields {closed, 0}. start <= end is not required.
func Resolve(start, end, now time.Time) Timing {
	if start.IsZero() || end.IsZero() {
		return closed
	}
	switch {
	case now.Before(start):
		return Timing{Phase: PhaseUpcoming, CountdownMs: start.Sub(now).Milliseconds()}
	case !now.After(end):
		return Timing{Phase: PhaseLive, CountdownMs: end.Sub(now).Milliseconds()}
	default:
		return Timing{Phase: PhaseClosed, CountdownMs: now.Sub(end).Milliseconds()}
	}
}

// ResolveWindow parses w and resolves it against now. A nil window or an
// unparseable timestamp yields {closed, 0}.
func ResolveWindow(w *Window, now time.Time) Timing {
	if w == nil {
		return closed
	}
	start, ok := ParseTimestamp(w.StartTime)
	if !ok {
		return closed
	}
	end, ok := ParseTimestamp(w.EndTime)
	if !ok {
		return closed
	}
	return Resolve(start, end, now)
}

// ParseTimestamp accepts RFC 3339 and the zone-less ISO-8601 forms, which
// are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
