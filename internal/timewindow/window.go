package timewindow

import (
	"fmt"
	"time"
)

// Clock supplies the current instant in UTC. Injected everywhere "now" is
// needed so window math stays deterministic under test.
type Clock interface {
	Now() time.Time
}

// UTCClock is the production clock.
type UTCClock struct{}

func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

// Category labels one leaderboard window scope.
type Category string

const (
	Daily   Category = "daily"
	Weekly  Category = "weekly"
	Monthly Category = "monthly"
	AllTime Category = "all_time"
)

// CategoryKey pairs a window category with the sorted-set key it currently
// occupies. Keys are pure functions of time; when a period rolls over the key
// changes and the old leaderboard goes inert on its own.
type CategoryKey struct {
	Window Category
	Key    string
}

// Calculator derives window boundaries from an instant, given how many hours
// past UTC midnight the business day begins.
type Calculator struct {
	offset time.Duration
}

func NewCalculator(offsetHours float64) (*Calculator, error) {
	if offsetHours < 0 || offsetHours >= 24 {
		return nil, fmt.Errorf("business day offset must be in [0, 24) hours, got %v", offsetHours)
	}
	return &Calculator{offset: time.Duration(offsetHours * float64(time.Hour))}, nil
}

// DayStart returns midnight of now's date plus the configured offset. When
// now falls before that instant the current business day started yesterday.
func (c *Calculator) DayStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := midnight.Add(c.offset)
	if now.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// WeekStart returns the day start of the Monday opening the current business week.
func (c *Calculator) WeekStart(now time.Time) time.Time {
	dayStart := c.DayStart(now)
	return dayStart.AddDate(0, 0, -((int(dayStart.Weekday()) + 6) % 7))
}

// MonthStart returns the day start of the first day of the current business month.
func (c *Calculator) MonthStart(now time.Time) time.Time {
	dayStart := c.DayStart(now)
	return dayStart.AddDate(0, 0, -(dayStart.Day() - 1))
}

func (c *Calculator) TomorrowStart(now time.Time) time.Time {
	return c.DayStart(now).AddDate(0, 0, 1)
}

// RankCategories returns the ordered set of currently-active leaderboard
// keys: daily, weekly, monthly, all_time.
func (c *Calculator) RankCategories(now time.Time) []CategoryKey {
	return []CategoryKey{
		{Window: Daily, Key: c.DayStart(now).Format("2006-01-02") + "_" + string(Daily)},
		{Window: Weekly, Key: c.WeekStart(now).Format("2006-01-02") + "_" + string(Weekly)},
		{Window: Monthly, Key: c.MonthStart(now).Format("2006-01") + "_" + string(Monthly)},
		{Window: AllTime, Key: string(AllTime)},
	}
}

// MonthlyKey returns just the current monthly leaderboard key, used when
// resolving a member's role from their monthly total.
func (c *Calculator) MonthlyKey(now time.Time) string {
	return c.MonthStart(now).Format("2006-01") + "_" + string(Monthly)
}
