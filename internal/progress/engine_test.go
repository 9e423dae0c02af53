package progress_test

import (
	"testing"
	"time"

	"okoval/fitness-planner/internal/domain"
	"okoval/fitness-planner/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixed reference time: Saturday 2025-03-15, mid afternoon
var testNow = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func logOn(t time.Time) domain.WorkoutLog {
	return domain.WorkoutLog{
		ID:          primitive.NewObjectID(),
		UserID:      domain.DemoUserID,
		CompletedAt: &t,
	}
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCompute_EmptyInput(t *testing.T) {
	report := progress.Compute(nil, nil, testNow, 7)

	assert.Equal(t, 0, report.TotalWorkouts)
	assert.Equal(t, 0, report.CurrentStreak)
	assert.Equal(t, 0, report.ThisWeekCount)
	assert.Equal(t, 0, report.TotalMinutes)
	assert.Equal(t, 0, report.TotalCalories)
	assert.Zero(t, report.AvgRating)
	assert.Zero(t, report.AvgRPE)
	assert.Empty(t, report.Tags)
	assert.Len(t, report.Days, 7)
	assert.Len(t, report.Weeks, 1)
	assert.Equal(t, 7, report.WindowDays)
}

func TestCompute_DailySeriesLengthAndOrder(t *testing.T) {
	for windowDays := 1; windowDays <= 31; windowDays++ {
		report := progress.Compute(nil, nil, testNow, windowDays)
		require.Len(t, report.Days, windowDays, "windowDays=%d", windowDays)

		// chronological, ending on today's date
		for i := range report.Days {
			wantDay := testNow.AddDate(0, 0, -(windowDays - 1 - i))
			assert.Equal(t, wantDay.Format("2006-01-02"), report.Days[i].Date)
			assert.Equal(t, wantDay.Format("Mon"), report.Days[i].Day)
		}
	}
}

func TestCompute_CurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		logDays []int // days ago with a log
		want    int
	}{
		{
			name:    "no logs",
			logDays: nil,
			want:    0,
		},
		{
			name:    "three consecutive days including today",
			logDays: []int{0, 1, 2},
			want:    3,
		},
		{
			name:    "yesterday and the day before but none today",
			logDays: []int{1, 2},
			want:    2,
		},
		{
			name:    "today and two days ago with a gap yesterday",
			logDays: []int{0, 2},
			want:    1,
		},
		{
			name:    "only today",
			logDays: []int{0},
			want:    1,
		},
		{
			name:    "gap two days ago breaks a longer run",
			logDays: []int{0, 1, 3, 4},
			want:    2,
		},
		{
			name:    "last workout beyond the 30 day scan cap",
			logDays: []int{35, 36},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs []domain.WorkoutLog
			for _, d := range tt.logDays {
				logs = append(logs, logOn(daysAgo(d)))
			}
			report := progress.Compute(logs, nil, testNow, 7)
			assert.Equal(t, tt.want, report.CurrentStreak)
		})
	}
}

// The running streak embedded in the daily series is a forward accumulator
// that resets on every empty day, including today. It intentionally disagrees
// with CurrentStreak, which skips an empty today.
func TestCompute_RunningStreakSeries(t *testing.T) {
	logs := []domain.WorkoutLog{
		logOn(daysAgo(5)),
		logOn(daysAgo(3)),
		logOn(daysAgo(2)),
		logOn(daysAgo(0)),
	}

	report := progress.Compute(logs, nil, testNow, 7)
	require.Len(t, report.Days, 7)

	// days ago:        6  5  4  3  2  1  0
	wantWorkouts := []int{0, 1, 0, 1, 1, 0, 1}
	wantStreaks := []int{0, 1, 0, 1, 2, 0, 1}
	for i := range report.Days {
		assert.Equal(t, wantWorkouts[i], report.Days[i].Workouts, "workouts day %d", i)
		assert.Equal(t, wantStreaks[i], report.Days[i].Streak, "streak day %d", i)
	}

	// the headline streak counts today and stops at the empty yesterday
	assert.Equal(t, 1, report.CurrentStreak)
}

func TestCompute_ThisWeekCountIgnoresWindowSize(t *testing.T) {
	logs := []domain.WorkoutLog{
		logOn(daysAgo(0)),
		logOn(daysAgo(6)),  // still inside the trailing 7 days
		logOn(daysAgo(7)),  // outside
		logOn(daysAgo(20)), // outside
	}

	report := progress.Compute(logs, nil, testNow, 31)
	assert.Equal(t, 2, report.ThisWeekCount)
	assert.Equal(t, 4, report.TotalWorkouts)
}

func TestCompute_WeeklySummariesPartitionWindow(t *testing.T) {
	// 17-day window: buckets of 7, 7 and 3 days (oldest absorbs the remainder)
	const windowDays = 17

	var logs []domain.WorkoutLog
	for d := 0; d < windowDays; d++ {
		logs = append(logs, logOn(daysAgo(d)))
	}

	report := progress.Compute(logs, nil, testNow, windowDays)
	require.Len(t, report.Weeks, 3)

	oldest, middle, latest := report.Weeks[0], report.Weeks[1], report.Weeks[2]

	assert.Equal(t, daysAgo(16).Format("2006-01-02"), oldest.WeekStart)
	assert.Equal(t, daysAgo(14).Format("2006-01-02"), oldest.WeekEnd)
	assert.Equal(t, 3, oldest.Workouts)

	assert.Equal(t, daysAgo(13).Format("2006-01-02"), middle.WeekStart)
	assert.Equal(t, daysAgo(7).Format("2006-01-02"), middle.WeekEnd)
	assert.Equal(t, 7, middle.Workouts)

	assert.Equal(t, daysAgo(6).Format("2006-01-02"), latest.WeekStart)
	assert.Equal(t, daysAgo(0).Format("2006-01-02"), latest.WeekEnd)
	assert.Equal(t, 7, latest.Workouts)

	// no gap, no overlap: bucket counts sum to the log count
	total := 0
	for _, w := range report.Weeks {
		total += w.Workouts
	}
	assert.Equal(t, len(logs), total)
}

func TestCompute_WeeklySummaryAggregates(t *testing.T) {
	l1 := logOn(daysAgo(0))
	l1.DurationMinutes = intPtr(40)
	l1.RPE = intPtr(8)
	l1.CaloriesBurned = intPtr(300)

	l2 := logOn(daysAgo(2))
	l2.DurationMinutes = intPtr(20)
	l2.CaloriesBurned = intPtr(150)

	l3 := logOn(daysAgo(3))
	l3.RPE = intPtr(5)

	report := progress.Compute([]domain.WorkoutLog{l1, l2, l3}, nil, testNow, 7)
	require.Len(t, report.Weeks, 1)

	week := report.Weeks[0]
	assert.Equal(t, 3, week.Workouts)
	assert.Equal(t, 60, week.TotalMinutes)
	assert.InDelta(t, 6.5, week.AvgRPE, 0.001)
	assert.Equal(t, 450, week.TotalCalories)
}

func TestCompute_AveragesIgnoreAbsentAndNonPositive(t *testing.T) {
	l1 := logOn(daysAgo(0))
	l1.Rating = intPtr(4)
	l1.RPE = intPtr(7)

	l2 := logOn(daysAgo(1))
	l2.Rating = intPtr(5)
	l2.RPE = intPtr(0) // non-positive, ignored

	l3 := logOn(daysAgo(2)) // no rating, no rpe

	report := progress.Compute([]domain.WorkoutLog{l1, l2, l3}, nil, testNow, 7)
	assert.InDelta(t, 4.5, report.AvgRating, 0.001)
	assert.InDelta(t, 7.0, report.AvgRPE, 0.001)

	// with no values present at all the averages are 0, not NaN
	empty := progress.Compute([]domain.WorkoutLog{logOn(daysAgo(0))}, nil, testNow, 7)
	assert.Zero(t, empty.AvgRating)
	assert.Zero(t, empty.AvgRPE)
}

func TestCompute_AverageRatingRoundedToOneDecimal(t *testing.T) {
	l1 := logOn(daysAgo(0))
	l1.Rating = intPtr(5)
	l2 := logOn(daysAgo(1))
	l2.Rating = intPtr(4)
	l3 := logOn(daysAgo(2))
	l3.Rating = intPtr(4)

	report := progress.Compute([]domain.WorkoutLog{l1, l2, l3}, nil, testNow, 7)
	assert.InDelta(t, 4.3, report.AvgRating, 0.001) // 13/3 = 4.333...
}

func TestCompute_DurationDerivation(t *testing.T) {
	workoutID := primitive.NewObjectID()
	workoutsByID := map[primitive.ObjectID]domain.Workout{
		workoutID: {ID: workoutID, Name: "Day 1: Upper Body", EstimatedDuration: 45},
	}

	t.Run("own duration wins over linked workout", func(t *testing.T) {
		l := logOn(daysAgo(0))
		l.WorkoutID = &workoutID
		l.DurationMinutes = intPtr(30)

		report := progress.Compute([]domain.WorkoutLog{l}, workoutsByID, testNow, 7)
		assert.Equal(t, 30, report.TotalMinutes)
	})

	t.Run("linked workout estimate backfills", func(t *testing.T) {
		l := logOn(daysAgo(0))
		l.WorkoutID = &workoutID

		report := progress.Compute([]domain.WorkoutLog{l}, workoutsByID, testNow, 7)
		assert.Equal(t, 45, report.TotalMinutes)
	})

	t.Run("exercise seconds converted to minutes", func(t *testing.T) {
		l := logOn(daysAgo(0))
		l.Exercises = []domain.ExerciseEntry{
			{Name: "Plank", DurationSeconds: floatPtr(120)},
		}

		report := progress.Compute([]domain.WorkoutLog{l}, nil, testNow, 7)
		assert.Equal(t, 2, report.TotalMinutes)
	})

	t.Run("exercise field priority and malformed entries", func(t *testing.T) {
		l := logOn(daysAgo(0))
		l.Exercises = []domain.ExerciseEntry{
			{Name: "Row", DurationMinutes: floatPtr(10), DurationSeconds: floatPtr(999)},
			{Name: "Bike", Duration: floatPtr(15)}, // generic duration treated as minutes
			{DurationMinutes: floatPtr(50)},        // no name: skipped
			{Name: "Curls", Sets: intPtr(3), Reps: intPtr(12)}, // no duration fields: contributes 0
		}

		report := progress.Compute([]domain.WorkoutLog{l}, nil, testNow, 7)
		assert.Equal(t, 25, report.TotalMinutes)
	})

	t.Run("unknown workout reference falls through to exercises", func(t *testing.T) {
		missing := primitive.NewObjectID()
		l := logOn(daysAgo(0))
		l.WorkoutID = &missing
		l.Exercises = []domain.ExerciseEntry{
			{Name: "Run", DurationMinutes: floatPtr(25)},
		}

		report := progress.Compute([]domain.WorkoutLog{l}, workoutsByID, testNow, 7)
		assert.Equal(t, 25, report.TotalMinutes)
	})
}

func TestCompute_TotalCaloriesNeverNegative(t *testing.T) {
	l1 := logOn(daysAgo(0))
	l1.CaloriesBurned = intPtr(250)
	l2 := logOn(daysAgo(1))
	l2.CaloriesBurned = intPtr(-100) // bad data, ignored
	l3 := logOn(daysAgo(2))          // absent, contributes 0

	report := progress.Compute([]domain.WorkoutLog{l1, l2, l3}, nil, testNow, 7)
	assert.Equal(t, 250, report.TotalCalories)
}

func TestCompute_TagBreakdown(t *testing.T) {
	l1 := logOn(daysAgo(0))
	l1.Tags = []string{"strength", "mobility"}
	l2 := logOn(daysAgo(1))
	l2.Tags = []string{"strength"}

	report := progress.Compute([]domain.WorkoutLog{l1, l2}, nil, testNow, 7)
	require.Len(t, report.Tags, 2)
	assert.Equal(t, progress.TagCount{Tag: "strength", Count: 2}, report.Tags[0])
	assert.Equal(t, progress.TagCount{Tag: "mobility", Count: 1}, report.Tags[1])
}

func TestCompute_TagBreakdownCountsEmptyTags(t *testing.T) {
	l1 := logOn(daysAgo(0))
	l1.Tags = []string{"", "push"}
	l2 := logOn(daysAgo(1))
	l2.Tags = []string{""}

	report := progress.Compute([]domain.WorkoutLog{l1, l2}, nil, testNow, 7)
	require.Len(t, report.Tags, 2)
	assert.Equal(t, progress.TagCount{Tag: "", Count: 2}, report.Tags[0])
	assert.Equal(t, progress.TagCount{Tag: "push", Count: 1}, report.Tags[1])
}

func TestCompute_TagBreakdownTiesKeepFirstSeenOrder(t *testing.T) {
	l1 := logOn(daysAgo(0))
	l1.Tags = []string{"cardio", "core", "balance"}
	l2 := logOn(daysAgo(1))
	l2.Tags = []string{"balance", "cardio", "core"}

	report := progress.Compute([]domain.WorkoutLog{l1, l2}, nil, testNow, 7)
	require.Len(t, report.Tags, 3)
	assert.Equal(t, "cardio", report.Tags[0].Tag)
	assert.Equal(t, "core", report.Tags[1].Tag)
	assert.Equal(t, "balance", report.Tags[2].Tag)
}

func TestCompute_NilCompletedAtTolerated(t *testing.T) {
	withDate := logOn(daysAgo(0))
	withDate.DurationMinutes = intPtr(30)

	noDate := domain.WorkoutLog{
		ID:              primitive.NewObjectID(),
		UserID:          domain.DemoUserID,
		DurationMinutes: intPtr(60),
	}

	report := progress.Compute([]domain.WorkoutLog{withDate, noDate}, nil, testNow, 7)

	// dateless logs are excluded from all day bucketing
	assert.Equal(t, 1, report.Days[len(report.Days)-1].Workouts)
	assert.Equal(t, 1, report.CurrentStreak)
	assert.Equal(t, 1, report.ThisWeekCount)
	assert.Equal(t, 1, report.Weeks[len(report.Weeks)-1].Workouts)

	// but still count toward the plain totals
	assert.Equal(t, 2, report.TotalWorkouts)
	assert.Equal(t, 90, report.TotalMinutes)
}

func TestCompute_WindowBounds(t *testing.T) {
	l := logOn(daysAgo(0))

	single := progress.Compute([]domain.WorkoutLog{l}, nil, testNow, 1)
	require.Len(t, single.Days, 1)
	assert.Equal(t, 1, single.Days[0].Workouts)
	require.Len(t, single.Weeks, 1)
	assert.Equal(t, single.Weeks[0].WeekStart, single.Weeks[0].WeekEnd)

	full := progress.Compute([]domain.WorkoutLog{l}, nil, testNow, 31)
	assert.Len(t, full.Days, 31)
	assert.Len(t, full.Weeks, 5) // 7+7+7+7+3
}

// The scenario from the planner's acceptance notes: four logs at today,
// today-2, today-3 and today-5 inside a 7-day window. Today has a log so it
// counts, and the empty yesterday stops the backward scan.
func TestCompute_RestDayScenario(t *testing.T) {
	logs := []domain.WorkoutLog{
		logOn(daysAgo(0)),
		logOn(daysAgo(2)),
		logOn(daysAgo(3)),
		logOn(daysAgo(5)),
	}

	report := progress.Compute(logs, nil, testNow, 7)
	assert.Equal(t, 1, report.CurrentStreak)
	assert.Equal(t, 4, report.TotalWorkouts)
	assert.Equal(t, 4, report.ThisWeekCount)
}
