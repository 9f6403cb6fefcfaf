package accrual

import (
	"context"
	"fmt"

	"github.com/studycove/studytime-cron/internal/store"
	"github.com/studycove/studytime-cron/internal/timewindow"
	"github.com/studycove/studytime-cron/internal/utils"
	"github.com/studycove/studytime-cron/models"
)

// Updater fans newly accrued study time out to every currently-active window
// category in the ranked store.
type Updater struct {
	store      store.RankedStore
	windows    *timewindow.Calculator
	clock      timewindow.Clock
	numDecimal int
}

func NewUpdater(rankedStore store.RankedStore, windows *timewindow.Calculator, clock timewindow.Clock, numDecimal int) *Updater {
	return &Updater{
		store:      rankedStore,
		windows:    windows,
		clock:      clock,
		numDecimal: numDecimal,
	}
}

// Apply adds hours to the member's daily, weekly, monthly and all-time
// scores. Category keys are recomputed from the clock on every call so a
// rolled-over period lands in its fresh leaderboard.
func (u *Updater) Apply(ctx context.Context, memberID string, hours float64) error {
	if hours < 0 {
		return fmt.Errorf("refusing to apply negative study time %v for member %s", hours, memberID)
	}

	categories := u.windows.RankCategories(u.clock.Now())
	keys := make([]string, 0, len(categories))
	for _, category := range categories {
		keys = append(keys, category.Key)
	}
	return u.store.IncrementScores(ctx, keys, memberID, hours)
}

// UserStats returns the member's rank and score for every active window
// category, in daily/weekly/monthly/all_time order. A member the store has
// never seen reads as last place with a zero score.
func (u *Updater) UserStats(ctx context.Context, memberID string) ([]models.WindowStat, error) {
	categories := u.windows.RankCategories(u.clock.Now())
	stats := make([]models.WindowStat, 0, len(categories))

	for _, category := range categories {
		rank, err := u.store.GetRank(ctx, category.Key, memberID)
		if err != nil {
			return nil, fmt.Errorf("get rank for %s in %s: %w", memberID, category.Key, err)
		}
		score, err := u.store.GetScore(ctx, category.Key, memberID)
		if err != nil {
			return nil, fmt.Errorf("get score for %s in %s: %w", memberID, category.Key, err)
		}
		stats = append(stats, models.WindowStat{
			Key:       category.Key,
			Rank:      rank,
			StudyTime: score,
		})
	}
	return stats, nil
}

// MonthlyTotal returns the member's rounded score in the current monthly
// window, the figure the role schedule is resolved against.
func (u *Updater) MonthlyTotal(ctx context.Context, memberID string) (float64, error) {
	return u.store.GetScore(ctx, u.windows.MonthlyKey(u.clock.Now()), memberID)
}

// StatsDiff returns the per-window study-time deltas between two snapshots,
// rounded for display. Both snapshots must list windows in the same order.
func (u *Updater) StatsDiff(prev, cur []models.WindowStat) []float64 {
	diff := make([]float64, 0, len(cur))
	for idx := range cur {
		if idx >= len(prev) {
			break
		}
		diff = append(diff, utils.RoundNum(cur[idx].StudyTime-prev[idx].StudyTime, u.numDecimal))
	}
	return diff
}
