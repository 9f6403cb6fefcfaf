package jobs

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/studycove/studytime-cron/internal/accrual"
	"github.com/studycove/studytime-cron/internal/roles"
)

// RunStats logs one member's rank and study time per window, plus their role
// standing. Used for spot checks from the command line; the bot renders the
// same data through its own pipeline.
func RunStats(
	ctx context.Context,
	updater *accrual.Updater,
	schedule roles.Schedule,
	numDecimal int,
	memberID string,
) error {
	if memberID == "" {
		return errors.New("member ID is required")
	}

	stats, err := updater.UserStats(ctx, memberID)
	if err != nil {
		return errors.New("get user stats: " + err.Error())
	}
	for _, stat := range stats {
		logrus.Infof("%s: rank %d with %v hours", stat.Key, stat.Rank, stat.StudyTime)
	}

	monthly, err := updater.MonthlyTotal(ctx, memberID)
	if err != nil {
		return errors.New("get monthly total: " + err.Error())
	}

	status := schedule.Resolve(monthly, numDecimal)
	if status.Current == nil {
		logrus.Info("No role reached yet this month")
	} else {
		logrus.Infof("Current role: %s", status.Current.Name)
	}
	if status.Next != nil {
		logrus.Infof("Next role: %s in %v hours", status.Next.Name, *status.HoursToNext)
	}
	return nil
}
