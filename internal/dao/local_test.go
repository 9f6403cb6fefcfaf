package dao

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studycove/studytime-cron/models"
)

func createTempDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "localdao_test")
	assert.NoError(t, err)
	return dir
}

func writeJSONFile(t *testing.T, path string, v interface{}) {
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()
	enc := json.NewEncoder(f)
	assert.NoError(t, enc.Encode(v))
}

func TestGetCheckpoint_FileNotExist(t *testing.T) {
	tmp := createTempDir(t)
	defer os.RemoveAll(tmp)
	dao := NewLocalDAO(tmp, "s", "m")
	checkpoint, err := dao.GetCheckpoint()
	assert.NoError(t, err)
	assert.True(t, checkpoint.LastRunAt.IsZero())
}

func TestGetCheckpoint_FileExists_Valid(t *testing.T) {
	tmp := createTempDir(t)
	defer os.RemoveAll(tmp)
	metadataDir := "m"
	os.MkdirAll(filepath.Join(tmp, metadataDir), 0755)
	expected := models.Checkpoint{
		LastRunAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	jsonPath := filepath.Join(tmp, metadataDir, CHECKPOINT_FILE)
	writeJSONFile(t, jsonPath, expected)
	dao := NewLocalDAO(tmp, "s", metadataDir)
	checkpoint, err := dao.GetCheckpoint()
	assert.NoError(t, err)
	assert.True(t, expected.LastRunAt.Equal(checkpoint.LastRunAt))
}

func TestGetCheckpoint_FileExists_Invalid(t *testing.T) {
	tmp := createTempDir(t)
	defer os.RemoveAll(tmp)
	metadataDir := "m"
	os.MkdirAll(filepath.Join(tmp, metadataDir), 0755)
	jsonPath := filepath.Join(tmp, metadataDir, CHECKPOINT_FILE)
	os.WriteFile(jsonPath, []byte("not json"), 0644)
	dao := NewLocalDAO(tmp, "s", metadataDir)
	_, err := dao.GetCheckpoint()
	assert.Error(t, err)
}

func TestSaveCheckpoint_RoundTrip(t *testing.T) {
	tmp := createTempDir(t)
	defer os.RemoveAll(tmp)
	dao := NewLocalDAO(tmp, "s", "m")

	saved := models.Checkpoint{LastRunAt: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)}
	assert.NoError(t, dao.SaveCheckpoint(saved))

	loaded, err := dao.GetCheckpoint()
	assert.NoError(t, err)
	assert.True(t, saved.LastRunAt.Equal(loaded.LastRunAt))
}

func TestSaveSnapshots_WritesOneFilePerCategory(t *testing.T) {
	tmp := createTempDir(t)
	defer os.RemoveAll(tmp)
	dao := NewLocalDAO(tmp, "s", "m")

	capturedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.SnapshotRow{
		{Category: "2024-03-01_daily", MemberID: "member-1", Rank: 1, Hours: 5.5, CapturedAt: capturedAt},
		{Category: "2024-03-01_daily", MemberID: "member-2", Rank: 2, Hours: 3.0, CapturedAt: capturedAt},
		{Category: "all_time", MemberID: "member-1", Rank: 1, Hours: 120.0, CapturedAt: capturedAt},
	}
	assert.NoError(t, dao.SaveSnapshots(rows))

	dailyData, err := os.ReadFile(filepath.Join(tmp, "s", "leaderboard_2024-03-01_daily.csv"))
	assert.NoError(t, err)
	assert.Contains(t, string(dailyData), "member-1")
	assert.Contains(t, string(dailyData), "member-2")

	allTimeData, err := os.ReadFile(filepath.Join(tmp, "s", "leaderboard_all_time.csv"))
	assert.NoError(t, err)
	assert.Contains(t, string(allTimeData), "120")
}

func TestSaveSnapshots_AppendsWithoutDuplicateHeader(t *testing.T) {
	tmp := createTempDir(t)
	defer os.RemoveAll(tmp)
	dao := NewLocalDAO(tmp, "s", "m")

	capturedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first := []models.SnapshotRow{
		{Category: "all_time", MemberID: "member-1", Rank: 1, Hours: 10, CapturedAt: capturedAt},
	}
	second := []models.SnapshotRow{
		{Category: "all_time", MemberID: "member-1", Rank: 1, Hours: 11, CapturedAt: capturedAt.Add(time.Hour)},
	}
	assert.NoError(t, dao.SaveSnapshots(first))
	assert.NoError(t, dao.SaveSnapshots(second))

	data, err := os.ReadFile(filepath.Join(tmp, "s", "leaderboard_all_time.csv"))
	assert.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "category,member_id"))
	assert.Equal(t, 2, strings.Count(string(data), "member-1"))
}

func TestSaveSnapshots_EmptyInput(t *testing.T) {
	tmp := createTempDir(t)
	defer os.RemoveAll(tmp)
	dao := NewLocalDAO(tmp, "s", "m")
	assert.NoError(t, dao.SaveSnapshots(nil))
}
