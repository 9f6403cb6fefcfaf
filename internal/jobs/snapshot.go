package jobs

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/studycove/studytime-cron/internal/dao"
	"github.com/studycove/studytime-cron/internal/store"
	"github.com/studycove/studytime-cron/internal/timewindow"
	"github.com/studycove/studytime-cron/models"
)

// RunSnapshot archives the current standings of every active window category.
// Rolled-over keys are never deleted from the store, but this export is what
// makes past periods easy to browse.
func RunSnapshot(
	ctx context.Context,
	rankedStore store.RankedStore,
	snapshotDAO dao.DAO,
	windows *timewindow.Calculator,
	clock timewindow.Clock,
	depth int64,
) error {
	now := clock.Now()
	categories := windows.RankCategories(now)

	var rows []models.SnapshotRow
	for _, category := range categories {
		entries, err := rankedStore.TopN(ctx, category.Key, depth)
		if err != nil {
			return errors.New("fetch top entries for " + category.Key + ": " + err.Error())
		}
		for idx, entry := range entries {
			rows = append(rows, models.SnapshotRow{
				Category:   category.Key,
				MemberID:   entry.MemberID,
				Rank:       int64(idx + 1),
				Hours:      entry.Score,
				CapturedAt: now,
			})
		}
		logrus.Infof("Captured %d entries for category %s", len(entries), category.Key)
	}

	if len(rows) == 0 {
		logrus.Info("No leaderboard entries to snapshot.")
		return nil
	}

	if err := snapshotDAO.SaveSnapshots(rows); err != nil {
		return errors.New("save snapshots: " + err.Error())
	}
	logrus.Info("Job completed successfully.")
	return nil
}
