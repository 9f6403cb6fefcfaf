// Package roles maps a member's monthly study-time total onto the configured
// promotion schedule.
package roles

import (
	"fmt"

	"github.com/studycove/studytime-cron/internal/utils"
	"github.com/studycove/studytime-cron/models"
)

// Role is one named tier with the monthly hours needed to attain it.
type Role struct {
	Name       string
	BeginHours float64
}

// Schedule is the ordered tier list, ascending by BeginHours.
type Schedule []Role

// NewSchedule validates the configured role settings: at least one role, and
// strictly increasing thresholds.
func NewSchedule(settings []models.RoleSetting) (Schedule, error) {
	if len(settings) == 0 {
		return nil, fmt.Errorf("study role schedule must not be empty")
	}

	schedule := make(Schedule, 0, len(settings))
	for idx, setting := range settings {
		if idx > 0 && setting.BeginHours <= settings[idx-1].BeginHours {
			return nil, fmt.Errorf("study role thresholds must be strictly increasing: %q (%v) after %q (%v)",
				setting.Name, setting.BeginHours, settings[idx-1].Name, settings[idx-1].BeginHours)
		}
		schedule = append(schedule, Role{Name: setting.Name, BeginHours: setting.BeginHours})
	}
	return schedule, nil
}

// Status is the outcome of resolving a monthly total against the schedule.
// Current is nil for members below the first threshold; Next and HoursToNext
// are nil once the top role is held.
type Status struct {
	Current     *Role
	Next        *Role
	HoursToNext *float64
}

// Resolve finds the highest role whose threshold the monthly total has
// reached (boundary inclusive) and the distance to the next one.
func (s Schedule) Resolve(hoursCurMonth float64, numDecimal int) Status {
	curIdx := 0
	nextIdx := -1
	for idx, role := range s {
		if role.BeginHours <= hoursCurMonth {
			curIdx = idx
		} else {
			nextIdx = idx
			break
		}
	}

	var status Status
	if hoursCurMonth >= s[curIdx].BeginHours {
		status.Current = &s[curIdx]
	}
	if nextIdx >= 0 {
		remaining := utils.RoundNum(s[nextIdx].BeginHours-hoursCurMonth, numDecimal)
		status.Next = &s[nextIdx]
		status.HoursToNext = &remaining
	}
	return status
}
