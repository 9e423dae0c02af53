// internal/progress/engine.go
//
// Package progress turns a raw window of workout logs into the derived
// statistics shown on the progress screen: daily activity series, streaks,
// weekly rollups, tag breakdown and duration/calorie totals.
//
// The engine is pure: it performs no I/O, holds no state between calls and
// never fails. Every field it reads off a log is optional and defensively
// checked, so any input list (empty, missing timestamps, malformed exercise
// entries) produces a well-formed, possibly all-zero Report.
package progress

import (
	"math"
	"sort"
	"time"

	"okoval/fitness-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// maxStreakScan bounds the backward current-streak scan. A user who has not
// trained in over 30 days reports a streak of 0.
const maxStreakScan = 30

// Compute builds the progress report for one user's logs.
//
// The caller is expected to pass logs whose completedAt falls inside the
// window of windowDays calendar days ending on now's day, plus the referenced
// workouts keyed by ID for duration backfill. Imperfect filtering is
// tolerated: logs without a timestamp are excluded from all date bucketing
// (they still count toward the plain totals), and calendar-day comparison is
// done in now's location.
func Compute(
	logs []domain.WorkoutLog,
	workoutsByID map[primitive.ObjectID]domain.Workout,
	now time.Time,
	windowDays int,
) Report {
	if windowDays < 1 {
		windowDays = 1
	}
	loc := now.Location()
	today := startOfDay(now, loc)

	countByDay := make(map[string]int)
	for _, l := range logs {
		if l.CompletedAt == nil {
			continue
		}
		countByDay[l.CompletedAt.In(loc).Format(dateLayout)]++
	}

	report := Report{
		Days:          dailySeries(countByDay, today, windowDays),
		TotalWorkouts: len(logs),
		CurrentStreak: currentStreak(countByDay, today),
		ThisWeekCount: countInRange(logs, today.AddDate(0, 0, -6), today, loc),
		AvgRating:     round1(averageOf(logs, func(l domain.WorkoutLog) *int { return l.Rating })),
		AvgRPE:        round1(averageOf(logs, func(l domain.WorkoutLog) *int { return l.RPE })),
		Tags:          tagBreakdown(logs),
		Weeks:         weeklySummaries(logs, workoutsByID, today, windowDays, loc),
		WindowDays:    windowDays,
	}

	var totalMinutes float64
	for _, l := range logs {
		totalMinutes += logDurationMinutes(l, workoutsByID)
		if cal := l.CaloriesBurned; cal != nil && *cal > 0 {
			report.TotalCalories += *cal
		}
	}
	report.TotalMinutes = int(math.Round(totalMinutes))

	return report
}

// dailySeries produces exactly windowDays entries, oldest first, with the
// forward running streak embedded per day.
func dailySeries(countByDay map[string]int, today time.Time, windowDays int) []DailyStat {
	series := make([]DailyStat, 0, windowDays)
	running := 0
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		workouts := countByDay[day.Format(dateLayout)]
		if workouts > 0 {
			running++
		} else {
			running = 0
		}
		series = append(series, DailyStat{
			Date:     day.Format(dateLayout),
			Day:      day.Format("Mon"),
			Workouts: workouts,
			Streak:   running,
		})
	}
	return series
}

// currentStreak scans backward from today, day by day. A day with at least
// one workout extends the streak; the first empty day stops the scan, except
// that an empty today is neutral (the day is still in progress) and the scan
// simply moves on to yesterday.
func currentStreak(countByDay map[string]int, today time.Time) int {
	streak := 0
	for i := 0; i < maxStreakScan; i++ {
		day := today.AddDate(0, 0, -i)
		if countByDay[day.Format(dateLayout)] > 0 {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// weeklySummaries partitions the window into trailing 7-day buckets ending on
// today, oldest first. The oldest bucket absorbs the remainder when the
// window length is not a multiple of 7, so the buckets cover the window
// exactly with no overlap and no gap.
func weeklySummaries(
	logs []domain.WorkoutLog,
	workoutsByID map[primitive.ObjectID]domain.Workout,
	today time.Time,
	windowDays int,
	loc *time.Location,
) []WeeklySummary {
	buckets := (windowDays + 6) / 7
	windowStart := today.AddDate(0, 0, -(windowDays - 1))

	summaries := make([]WeeklySummary, 0, buckets)
	for b := buckets - 1; b >= 0; b-- {
		end := today.AddDate(0, 0, -7*b)
		start := end.AddDate(0, 0, -6)
		if start.Before(windowStart) {
			start = windowStart
		}

		summary := WeeklySummary{
			WeekStart: start.Format(dateLayout),
			WeekEnd:   end.Format(dateLayout),
		}
		var minutes, rpeSum float64
		var rpeCount int
		for _, l := range logs {
			if l.CompletedAt == nil {
				continue
			}
			day := startOfDay(*l.CompletedAt, loc)
			if day.Before(start) || day.After(end) {
				continue
			}
			summary.Workouts++
			minutes += logDurationMinutes(l, workoutsByID)
			if l.RPE != nil && *l.RPE > 0 {
				rpeSum += float64(*l.RPE)
				rpeCount++
			}
			if l.CaloriesBurned != nil && *l.CaloriesBurned > 0 {
				summary.TotalCalories += *l.CaloriesBurned
			}
		}
		summary.TotalMinutes = int(math.Round(minutes))
		if rpeCount > 0 {
			summary.AvgRPE = round1(rpeSum / float64(rpeCount))
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// logDurationMinutes derives the session duration of a single log, in
// minutes. Priority: the log's own explicit duration, then the linked
// workout's estimated duration, then the sum of the per-exercise duration
// fields (the generic duration field is treated as already being minutes,
// matching the historical convention; see the ExerciseEntry doc).
func logDurationMinutes(l domain.WorkoutLog, workoutsByID map[primitive.ObjectID]domain.Workout) float64 {
	if l.DurationMinutes != nil && *l.DurationMinutes > 0 {
		return float64(*l.DurationMinutes)
	}
	if l.WorkoutID != nil {
		if w, ok := workoutsByID[*l.WorkoutID]; ok && w.EstimatedDuration > 0 {
			return float64(w.EstimatedDuration)
		}
	}
	var minutes float64
	for _, ex := range l.Exercises {
		if ex.Name == "" {
			// malformed entry, skip for duration purposes
			continue
		}
		switch {
		case ex.DurationMinutes != nil:
			minutes += *ex.DurationMinutes
		case ex.Duration != nil:
			minutes += *ex.Duration
		case ex.DurationSeconds != nil:
			minutes += math.Round(*ex.DurationSeconds / 60)
		}
	}
	if minutes < 0 {
		return 0
	}
	return minutes
}

// tagBreakdown counts every tag across every log and ranks them by
// descending count, breaking ties by first-seen order.
func tagBreakdown(logs []domain.WorkoutLog) []TagCount {
	counts := make(map[string]int)
	var order []string
	for _, l := range logs {
		for _, tag := range l.Tags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	ranked := make([]TagCount, 0, len(order))
	for _, tag := range order {
		ranked = append(ranked, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func countInRange(logs []domain.WorkoutLog, start, end time.Time, loc *time.Location) int {
	count := 0
	for _, l := range logs {
		if l.CompletedAt == nil {
			continue
		}
		day := startOfDay(*l.CompletedAt, loc)
		if !day.Before(start) && !day.After(end) {
			count++
		}
	}
	return count
}

// averageOf computes the mean over present, positive values only.
func averageOf(logs []domain.WorkoutLog, field func(domain.WorkoutLog) *int) float64 {
	var sum float64
	var n int
	for _, l := range logs {
		if v := field(l); v != nil && *v > 0 {
			sum += float64(*v)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
