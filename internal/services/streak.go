package services

import (
	"math"
	"sort"
	"time"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/response_models"
	"menteviva/pkg/utils"
)

// sortByDateDesc returns a copy of checkIns ordered newest first. Entries
// sharing a date keep their input order.
func sortByDateDesc(checkIns []db_models.CheckIn) []db_models.CheckIn {
	sorted := make([]db_models.CheckIn, len(checkIns))
	copy(sorted, checkIns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// indexByDate keys check-ins by their YYYY-MM-DD date. The first entry seen
// for a date wins.
func indexByDate(checkIns []db_models.CheckIn) map[string]*db_models.CheckIn {
	byDate := make(map[string]*db_models.CheckIn, len(checkIns))
	for i := range checkIns {
		if _, ok := byDate[checkIns[i].Date]; ok {
			continue
		}
		byDate[checkIns[i].Date] = &checkIns[i]
	}
	return byDate
}

// CalculateStreak counts consecutive non-missed days walking back from today.
// An absent check-in for today does not break the streak; an absent day
// before today or a missed check-in does.
func CalculateStreak(checkIns []db_models.CheckIn, today time.Time) int {
	if len(checkIns) == 0 {
		return 0
	}
	byDate := indexByDate(sortByDateDesc(checkIns))

	day := utils.DateOnly(today)
	todayKey := utils.FormatDate(day)
	streak := 0
	for {
		key := utils.FormatDate(day)
		checkIn, ok := byDate[key]
		if !ok {
			if key == todayKey {
				day = day.AddDate(0, 0, -1)
				continue
			}
			break
		}
		if checkIn.Status == db_models.StatusMissed {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CalculateLongestStreak returns the longest run of consecutive calendar days
// with a non-missed check-in anywhere in the history.
func CalculateLongestStreak(checkIns []db_models.CheckIn) int {
	sorted := sortByDateDesc(checkIns)
	byDate := indexByDate(sorted)

	longest, run := 0, 0
	var prev time.Time
	for i := len(sorted) - 1; i >= 0; i-- {
		checkIn := byDate[sorted[i].Date]
		if checkIn != &sorted[i] {
			continue
		}
		day := checkIn.Day()
		if day.IsZero() || checkIn.Status == db_models.StatusMissed {
			run = 0
			prev = time.Time{}
			continue
		}
		if !prev.IsZero() && day.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		prev = day
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CalculateSuccessRate is the rounded percentage of completed or partial
// check-ins; 0 when there are none.
func CalculateSuccessRate(checkIns []db_models.CheckIn) int {
	if len(checkIns) == 0 {
		return 0
	}
	succeeded := 0
	for _, c := range checkIns {
		if c.Status.Succeeded() {
			succeeded++
		}
	}
	return int(math.Round(100 * float64(succeeded) / float64(len(checkIns))))
}

func BuildHabitStats(checkIns []db_models.CheckIn, today time.Time) response_models.HabitStats {
	stats := response_models.HabitStats{
		CurrentStreak: CalculateStreak(checkIns, today),
		LongestStreak: CalculateLongestStreak(checkIns),
		SuccessRate:   CalculateSuccessRate(checkIns),
		TotalCheckIns: len(checkIns),
	}
	for _, c := range checkIns {
		switch c.Status {
		case db_models.StatusCompleted:
			stats.CompletedCount++
		case db_models.StatusPartial:
			stats.PartialCount++
		case db_models.StatusMissed:
			stats.MissedCount++
		}
	}
	return stats
}
