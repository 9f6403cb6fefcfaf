package models

import "time"

// ScoreEntry is one member's row in a leaderboard category.
type ScoreEntry struct {
	MemberID string
	Score    float64
}

// WindowStat is a read-only rank/score projection for one window category,
// computed per query and never stored.
type WindowStat struct {
	Key       string  `json:"key"`
	Rank      int64   `json:"rank"`
	StudyTime float64 `json:"study_time"`
}

// SnapshotRow is one exported leaderboard line.
type SnapshotRow struct {
	Category   string    `csv:"category"`
	MemberID   string    `csv:"member_id"`
	Rank       int64     `csv:"rank"`
	Hours      float64   `csv:"hours"`
	CapturedAt time.Time `csv:"captured_at"`
}

// Checkpoint records how far the accrual job has processed. The next run
// fetches events from LastRunAt onward.
type Checkpoint struct {
	LastRunAt time.Time `json:"last_run_at"`
}
