package models

// RoleSetting is one tier in the promotion schedule. BeginHours is the
// monthly study-time threshold at which the role is attained.
type RoleSetting struct {
	Name       string  `json:"name"`
	BeginHours float64 `json:"begin_hours"`
}

// Config is the immutable application configuration, loaded once at startup
// and threaded through constructors. Never read from globals.
type Config struct {
	// Hours past UTC midnight at which a business day rolls over. Must be
	// in [0, 24); may be fractional.
	BusinessDayOffsetHours float64 `json:"business_day_offset_hours"`
	// Decimal places used when rounding scores for display.
	DisplayNumDecimal int `json:"display_num_decimal"`
	// Ordered role schedule, ascending by BeginHours.
	StudyRoles []RoleSetting `json:"study_roles"`
	// How many members each snapshot export captures per category.
	SnapshotDepth int `json:"snapshot_depth"`
}
