package services

import (
	"time"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/response_models"
	"menteviva/pkg/utils"
)

// ReconcileMonth lays the habit's check-ins over every day of the month.
// Future days are always neutral, even when a check-in exists for them.
func ReconcileMonth(year int, month time.Month, checkIns []db_models.CheckIn, today time.Time) []response_models.CalendarDay {
	byDate := indexByDate(sortByDateDesc(checkIns))
	todayKey := utils.FormatDate(today)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]response_models.CalendarDay, 0, 31)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		key := utils.FormatDate(day)
		checkIn := byDate[key]
		entry := response_models.CalendarDay{
			Date:    key,
			CheckIn: checkIn,
			IsToday: key == todayKey,
		}

		switch {
		case key > todayKey:
			entry.State = response_models.CalendarNeutral
		case checkIn != nil:
			entry.State = response_models.CalendarState(checkIn.Status)
		case entry.IsToday:
			entry.State = response_models.CalendarPending
		default:
			entry.State = response_models.CalendarEmpty
		}
		days = append(days, entry)
	}
	return days
}
