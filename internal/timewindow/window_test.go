package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCalculator_RejectsBadOffsets(t *testing.T) {
	_, err := NewCalculator(-1)
	assert.Error(t, err)

	_, err = NewCalculator(24)
	assert.Error(t, err)

	_, err = NewCalculator(25.5)
	assert.Error(t, err)

	_, err = NewCalculator(0)
	assert.NoError(t, err)

	_, err = NewCalculator(4.5)
	assert.NoError(t, err)
}

func TestDayStart_AfterBoundary(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC), calc.DayStart(now))
}

func TestDayStart_BeforeBoundaryRollsBack(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	// 02:00 is before the 04:00 boundary, so the business day started the
	// previous calendar day.
	now := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 28, 4, 0, 0, 0, time.UTC), calc.DayStart(now))
}

func TestDayStart_FractionalOffset(t *testing.T) {
	calc, err := NewCalculator(4.5)
	assert.NoError(t, err)

	now := time.Date(2024, 3, 1, 4, 15, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 4, 30, 0, 0, time.UTC), calc.DayStart(now))
}

func TestWeekStart_AlignsToMonday(t *testing.T) {
	calc, err := NewCalculator(0)
	assert.NoError(t, err)

	// 2024-03-01 is a Friday; the week began Monday 2024-02-26.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), calc.WeekStart(now))
}

func TestWeekStart_OnMonday(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	// Monday after the boundary: the week starts today.
	now := time.Date(2024, 2, 26, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 26, 4, 0, 0, 0, time.UTC), calc.WeekStart(now))
}

func TestMonthStart(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC), calc.MonthStart(now))
}

func TestMonthStart_EarlyHoursOfFirstDay(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	// Before the boundary on March 1st the business day is still Feb 29, so
	// the business month is February.
	now := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 4, 0, 0, 0, time.UTC), calc.MonthStart(now))
}

func TestTomorrowStart(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 2, 4, 0, 0, 0, time.UTC), calc.TomorrowStart(now))
}

func TestRankCategories_KeysAndOrder(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	categories := calc.RankCategories(now)

	assert.Len(t, categories, 4)
	assert.Equal(t, CategoryKey{Window: Daily, Key: "2024-03-01_daily"}, categories[0])
	assert.Equal(t, CategoryKey{Window: Weekly, Key: "2024-02-26_weekly"}, categories[1])
	assert.Equal(t, CategoryKey{Window: Monthly, Key: "2024-03_monthly"}, categories[2])
	assert.Equal(t, CategoryKey{Window: AllTime, Key: "all_time"}, categories[3])
}

func TestRankCategories_NewPeriodNewKeys(t *testing.T) {
	calc, err := NewCalculator(0)
	assert.NoError(t, err)

	before := calc.RankCategories(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC))
	after := calc.RankCategories(time.Date(2024, 4, 1, 1, 0, 0, 0, time.UTC))

	assert.NotEqual(t, before[0].Key, after[0].Key)
	assert.NotEqual(t, before[2].Key, after[2].Key)
	assert.Equal(t, before[3].Key, after[3].Key)
}

func TestMonthlyKey(t *testing.T) {
	calc, err := NewCalculator(4)
	assert.NoError(t, err)

	assert.Equal(t, "2024-03_monthly", calc.MonthlyKey(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)))
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	clock := FixedClock{Instant: instant}
	assert.Equal(t, instant, clock.Now())
}
