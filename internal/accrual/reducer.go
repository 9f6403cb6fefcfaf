package accrual

import (
	"fmt"
	"time"

	"github.com/studycove/studytime-cron/models"
)

// ErrNegativeElapsed signals that a member's summed study time came out
// below zero. That only happens on malformed or out-of-order input, so it is
// surfaced instead of being clamped.
var ErrNegativeElapsed = fmt.Errorf("study time below zero")

// ComputeElapsed reduces a time-ordered enter/leave event log to the hours of
// session coverage overlapping [windowStart, now].
//
// A leading end event belongs to a session opened before the window, so the
// portion since windowStart is counted. A trailing start event is a session
// still open, counted up to now. The remaining events alternate start/end and
// are summed pairwise.
func ComputeElapsed(events []models.Event, windowStart, now time.Time) (float64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	var total time.Duration
	startIdx := 0
	endIdx := len(events) - 1

	if events[0].Category == models.SessionEnd {
		total += events[0].CreationTime.Sub(windowStart)
		startIdx = 1
	}

	if events[len(events)-1].Category == models.SessionStart {
		total += now.Sub(events[len(events)-1].CreationTime)
		endIdx--
	}

	for idx := startIdx; idx < endIdx; idx += 2 {
		total += events[idx+1].CreationTime.Sub(events[idx].CreationTime)
	}

	hours := total.Hours()
	if hours < 0 {
		return 0, fmt.Errorf("%w: got %v hours", ErrNegativeElapsed, hours)
	}
	return hours, nil
}
