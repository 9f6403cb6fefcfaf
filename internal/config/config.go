// Package config loads and validates the application configuration file.
// Validation happens here, before any accrual starts: a bad business-day
// offset or a non-monotonic role schedule must never reach the jobs.
package config

import (
	"fmt"

	"github.com/studycove/studytime-cron/internal/roles"
	"github.com/studycove/studytime-cron/internal/timewindow"
	"github.com/studycove/studytime-cron/internal/utils"
	"github.com/studycove/studytime-cron/models"
)

const DEFAULT_SNAPSHOT_DEPTH = 100

func Load(path string) (models.Config, error) {
	var cfg models.Config
	if err := utils.ReadJSONFile(path, &cfg); err != nil {
		return models.Config{}, err
	}

	if cfg.SnapshotDepth == 0 {
		cfg.SnapshotDepth = DEFAULT_SNAPSHOT_DEPTH
	}

	if err := Validate(cfg); err != nil {
		return models.Config{}, err
	}
	return cfg, nil
}

func Validate(cfg models.Config) error {
	if _, err := timewindow.NewCalculator(cfg.BusinessDayOffsetHours); err != nil {
		return err
	}
	if _, err := roles.NewSchedule(cfg.StudyRoles); err != nil {
		return err
	}
	if cfg.DisplayNumDecimal < 0 {
		return fmt.Errorf("display_num_decimal must not be negative, got %d", cfg.DisplayNumDecimal)
	}
	if cfg.SnapshotDepth < 0 {
		return fmt.Errorf("snapshot_depth must not be negative, got %d", cfg.SnapshotDepth)
	}
	return nil
}
