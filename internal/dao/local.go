package dao

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/studycove/studytime-cron/internal/utils"
	"github.com/studycove/studytime-cron/models"
)

type LocalDAO struct {
	outputPath  string
	snapshotDir string
	metadataDir string
}

func NewLocalDAO(outputPath, snapshotDir, metadataDir string) *LocalDAO {
	var err error
	err = multierr.Append(err, utils.CreateDirectoryIfNotExists(outputPath+"/"+snapshotDir))
	err = multierr.Append(err, utils.CreateDirectoryIfNotExists(outputPath+"/"+metadataDir))

	if err != nil {
		logrus.WithError(err).Fatal("Failed to create output directories")
	}

	return &LocalDAO{
		outputPath:  outputPath,
		snapshotDir: snapshotDir,
		metadataDir: metadataDir,
	}
}

func (u *LocalDAO) GetCheckpoint() (models.Checkpoint, error) {
	path := u.outputPath + "/" + u.metadataDir + "/" + CHECKPOINT_FILE
	if !utils.LocalFileExists(path) {
		return models.Checkpoint{}, nil
	}
	var checkpoint models.Checkpoint
	if err := utils.ReadJSONFile(path, &checkpoint); err != nil {
		return models.Checkpoint{}, err
	}
	return checkpoint, nil
}

func (u *LocalDAO) SaveCheckpoint(checkpoint models.Checkpoint) error {
	path := u.outputPath + "/" + u.metadataDir + "/" + CHECKPOINT_FILE
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	return utils.WriteJSONFile(file, checkpoint, true)
}

// SaveSnapshots appends the captured standings to one CSV per leaderboard
// category, so repeated exports build a history of each window.
func (u *LocalDAO) SaveSnapshots(rows []models.SnapshotRow) error {
	rowsByCategory := groupByCategory(rows)

	var err error
	for category, categoryRows := range rowsByCategory {
		filepath := u.outputPath + "/" + u.snapshotDir + "/" + fmt.Sprintf(SNAPSHOT_FILENAME_FORMAT, category)
		shouldAppend := utils.LocalFileExists(filepath)
		logrus.Infof("Saving %d snapshot rows for category %s to %s", len(categoryRows), category, filepath)
		err = multierr.Append(err, save(filepath, categoryRows, shouldAppend))
	}
	return err
}

func save[T any](path string, rows []T, append bool) error {
	var file *os.File
	var err error

	flag := os.O_CREATE | os.O_WRONLY
	if append {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}

	if len(rows) == 0 {
		logrus.Warnf("No data to save to %s", path)
		return nil
	}

	if file, err = os.OpenFile(path, flag, 0644); err != nil {
		return err
	}
	defer file.Close()

	writeHeaders := !append || !utils.LocalFileExists(path)
	if writeHeaders {
		if err = gocsv.MarshalFile(rows, file); err != nil {
			return err
		}
	} else {
		csvWriter := csv.NewWriter(file)
		defer csvWriter.Flush()
		if err = gocsv.MarshalCSVWithoutHeaders(rows, csvWriter); err != nil {
			return err
		}
	}

	return nil
}
