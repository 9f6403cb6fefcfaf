package store

import (
	"context"

	"github.com/studycove/studytime-cron/models"
)

// RankedStore is the ordered score store the accrual engine writes to and the
// rank/score queries read from. Implementations must make each operation
// atomic with respect to concurrent callers on the same category.
type RankedStore interface {
	// IncrementScore adds delta hours to the member's score in one category,
	// creating the entry at delta if absent.
	IncrementScore(ctx context.Context, category, memberID string, delta float64) error

	// IncrementScores applies the same delta to every listed category as one
	// atomic batch, so a failure cannot leave the windows half-updated.
	IncrementScores(ctx context.Context, categories []string, memberID string, delta float64) error

	// GetRank returns the member's 1-based rank by descending score. A member
	// with no entry is inserted at zero first, so an unranked member reads as
	// last place with a zero score rather than as absent.
	GetRank(ctx context.Context, category, memberID string) (int64, error)

	// GetScore returns the member's score rounded for display, or 0 if absent.
	GetScore(ctx context.Context, category, memberID string) (float64, error)

	// TopN returns up to n entries in descending score order.
	TopN(ctx context.Context, category string, n int64) ([]models.ScoreEntry, error)
}
