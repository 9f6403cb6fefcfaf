package dao

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/studycove/studytime-cron/models"
)

const (
	CHECKPOINT_FILE          = "accrual_checkpoint.json"
	SNAPSHOT_FILENAME_FORMAT = "leaderboard_%s.csv"
)

type S3Uploader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// DAO persists the accrual checkpoint and archives leaderboard snapshots.
// Rolling window keys go inert when their period ends; the snapshot export is
// what keeps old standings around.
type DAO interface {
	GetCheckpoint() (models.Checkpoint, error)
	SaveCheckpoint(models.Checkpoint) error
	SaveSnapshots(rows []models.SnapshotRow) error
}

func groupByCategory(rows []models.SnapshotRow) map[string][]models.SnapshotRow {
	groups := make(map[string][]models.SnapshotRow)
	for _, row := range rows {
		groups[row.Category] = append(groups[row.Category], row)
	}
	return groups
}
