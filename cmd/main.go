package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/studycove/studytime-cron/internal/accrual"
	"github.com/studycove/studytime-cron/internal/config"
	"github.com/studycove/studytime-cron/internal/dao"
	"github.com/studycove/studytime-cron/internal/jobs"
	"github.com/studycove/studytime-cron/internal/roles"
	"github.com/studycove/studytime-cron/internal/source"
	"github.com/studycove/studytime-cron/internal/store"
	"github.com/studycove/studytime-cron/internal/timewindow"
)

func main() {
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	mode := flag.String("mode", "local", "DAO mode: local or r2")
	job := flag.String("job", "accrue", "Job to run: accrue, snapshot or stats")
	member := flag.String("member", "", "Member ID for the stats job")
	flag.Parse()

	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal("Load config: ", err)
	}

	windows, err := timewindow.NewCalculator(cfg.BusinessDayOffsetHours)
	if err != nil {
		logrus.Fatal("Build window calculator: ", err)
	}
	clock := timewindow.UTCClock{}

	redisDb, _ := strconv.Atoi(os.Getenv("REDIS_DB_NUM"))
	redisClient := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Username: os.Getenv("REDIS_USERNAME"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDb,
	})
	rankedStore := store.NewRedisStore(redisClient, cfg.DisplayNumDecimal)

	var snapshotDAO dao.DAO
	switch *mode {
	case "local":
		snapshotDAO = dao.NewLocalDAO("data", "snapshots", "metadata")
	case "r2":
		snapshotDAO = dao.NewR2DAO("studytime-archive", "normal/snapshots", "normal/metadata")
	default:
		logrus.Fatalf("Unknown mode: %s", *mode)
	}

	ctx := context.Background()

	switch *job {
	case "accrue":
		client := source.NewHubClient(os.Getenv("EVENT_HUB_URL"))
		updater := accrual.NewUpdater(rankedStore, windows, clock, cfg.DisplayNumDecimal)
		if err := jobs.RunAccrual(ctx, client, updater, snapshotDAO, clock); err != nil {
			logrus.Fatal("Job failed: ", err)
		}
	case "snapshot":
		if err := jobs.RunSnapshot(ctx, rankedStore, snapshotDAO, windows, clock, int64(cfg.SnapshotDepth)); err != nil {
			logrus.Fatal("Job failed: ", err)
		}
	case "stats":
		schedule, err := roles.NewSchedule(cfg.StudyRoles)
		if err != nil {
			logrus.Fatal("Build role schedule: ", err)
		}
		updater := accrual.NewUpdater(rankedStore, windows, clock, cfg.DisplayNumDecimal)
		if err := jobs.RunStats(ctx, updater, schedule, cfg.DisplayNumDecimal, *member); err != nil {
			logrus.Fatal("Job failed: ", err)
		}
	default:
		logrus.Fatalf("Unknown job: %s", *job)
	}
}
