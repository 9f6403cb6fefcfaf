package models

import "time"

// EventCategory marks whether a member entered or left a study channel.
// The wire values match what the platform integration emits.
type EventCategory string

const (
	SessionStart EventCategory = "start channel"
	SessionEnd   EventCategory = "end channel"
)

// Event is one enter/leave record in a member's log. Logs are sorted
// non-decreasing by CreationTime and alternate start/end, except that the
// first event may be an end (session opened before the window) and the last
// may be a start (session still open).
type Event struct {
	CreationTime time.Time     `json:"creation_time"`
	Category     EventCategory `json:"category"`
}

// EventsOptions narrows a member-event query to a time window.
type EventsOptions struct {
	Since time.Time
	Until time.Time
}
