// internal/progress/report.go
package progress

// DailyStat is one point of the daily activity series.
type DailyStat struct {
	Date     string `json:"date"` // calendar date, YYYY-MM-DD
	Day      string `json:"day"`  // short weekday label, e.g. "Mon"
	Workouts int    `json:"workouts"`
	// Streak is the running streak as of this day: a forward accumulator that
	// resets to 0 on any day without a workout (today included). It is not the
	// same number as Report.CurrentStreak, which tolerates an empty today.
	Streak int `json:"streak"`
}

// WeeklySummary aggregates one trailing 7-day bucket of the window.
// The oldest bucket may cover fewer than 7 days when the window length
// is not a multiple of 7.
type WeeklySummary struct {
	WeekStart     string  `json:"weekStart"` // inclusive, YYYY-MM-DD
	WeekEnd       string  `json:"weekEnd"`   // inclusive, YYYY-MM-DD
	Workouts      int     `json:"workouts"`
	TotalMinutes  int     `json:"totalMinutes"`
	AvgRPE        float64 `json:"avgRpe"`
	TotalCalories int     `json:"totalCalories"`
}

// TagCount is one entry of the ranked tag breakdown.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Report is the aggregate bundle computed from one window of workout logs.
type Report struct {
	Days          []DailyStat     `json:"days"` // chronological, exactly WindowDays entries
	TotalWorkouts int             `json:"totalWorkouts"`
	CurrentStreak int             `json:"currentStreak"`
	ThisWeekCount int             `json:"thisWeekCount"` // trailing 7 days, independent of WindowDays
	TotalMinutes  int             `json:"totalMinutes"`
	AvgRating     float64         `json:"avgRating"` // one decimal, 0 when no ratings present
	AvgRPE        float64         `json:"avgRpe"`    // one decimal, 0 when no RPE present
	TotalCalories int             `json:"totalCalories"`
	Tags          []TagCount      `json:"tags"`  // descending count, ties in first-seen order
	Weeks         []WeeklySummary `json:"weeks"` // chronological; presentation order is the caller's choice
	WindowDays    int             `json:"windowDays"`
}
