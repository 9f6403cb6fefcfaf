package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/studycove/studytime-cron/internal/accrual"
	"github.com/studycove/studytime-cron/internal/dao"
	"github.com/studycove/studytime-cron/internal/source"
	"github.com/studycove/studytime-cron/internal/timewindow"
	"github.com/studycove/studytime-cron/models"
)

// How far back the first ever run reaches when no checkpoint exists yet.
// Matches the retention window of the event hub.
var BACK_RANGE_DAYS = 61

type memberElapsed struct {
	memberID string
	hours    float64
}

// RunAccrual advances every active member's leaderboards by the study time
// accrued since the last checkpoint, then moves the checkpoint forward.
func RunAccrual(
	ctx context.Context,
	client source.EventSource,
	updater *accrual.Updater,
	checkpointDAO dao.DAO,
	clock timewindow.Clock,
) error {
	checkpoint, err := checkpointDAO.GetCheckpoint()
	if err != nil {
		return errors.New("get checkpoint: " + err.Error())
	}

	now := clock.Now()
	since := checkpoint.LastRunAt
	if since.IsZero() {
		since = now.AddDate(0, 0, -BACK_RANGE_DAYS)
		logrus.Infof("No checkpoint found, starting from %s", since)
	}

	members, err := client.GetActiveMembers(since)
	if err != nil {
		return errors.New("get active members: " + err.Error())
	}
	if len(members) == 0 {
		logrus.Info("No members active since last checkpoint.")
	} else {
		logrus.Infof("Got %d active members since %s", len(members), since)
	}

	elapsed, err := collectElapsed(client, members, since, now)
	if err != nil {
		return fmt.Errorf("compute elapsed time: %w", err)
	}

	for _, entry := range elapsed {
		if err := updater.Apply(ctx, entry.memberID, entry.hours); err != nil {
			return errors.New("apply accrual for member " + entry.memberID + ": " + err.Error())
		}
	}

	if err := checkpointDAO.SaveCheckpoint(models.Checkpoint{LastRunAt: now}); err != nil {
		return errors.New("save checkpoint: " + err.Error())
	}
	logrus.Info("Job completed successfully.")
	return nil
}

// collectElapsed fetches each member's events in [since, now] and reduces
// them to hours. Fetch failures are logged and the member skipped; a negative
// elapsed result aborts the whole run, since it means the upstream log is out
// of order and must be investigated rather than papered over.
func collectElapsed(
	client source.EventSource,
	members []string,
	since, now time.Time,
) ([]memberElapsed, error) {
	elapsed := make([]memberElapsed, 0, len(members))

	for _, memberID := range members {
		events, err := client.GetMemberEvents(memberID, &models.EventsOptions{
			Since: since,
			Until: now,
		})
		if err != nil {
			logrus.Warnf("Failed to get events for member %s: %s", memberID, err.Error())
			continue
		}

		hours, err := accrual.ComputeElapsed(events, since, now)
		if err != nil {
			return nil, err
		}
		if hours == 0 {
			logrus.Infof("Skipped member %s with no accrued time", memberID)
			continue
		}

		elapsed = append(elapsed, memberElapsed{memberID: memberID, hours: hours})
	}

	return elapsed, nil
}
