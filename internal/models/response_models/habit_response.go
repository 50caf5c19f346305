package response_models

import "menteviva/internal/models/db_models"

type HabitLimit struct {
	ActiveCount    int  `json:"active_count"`
	MaxHabits      int  `json:"max_habits"`
	RemainingSlots int  `json:"remaining_slots"`
	CanCreate      bool `json:"can_create"`
}

type HabitStats struct {
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	SuccessRate    int `json:"success_rate"`
	TotalCheckIns  int `json:"total_check_ins"`
	CompletedCount int `json:"completed_count"`
	PartialCount   int `json:"partial_count"`
	MissedCount    int `json:"missed_count"`
}

// CalendarState is the display state of one calendar cell.
type CalendarState string

const (
	CalendarCompleted CalendarState = "completed"
	CalendarPartial   CalendarState = "partial"
	CalendarMissed    CalendarState = "missed"
	CalendarPending   CalendarState = "pending"
	CalendarEmpty     CalendarState = "empty"
	CalendarNeutral   CalendarState = "neutral"
)

type CalendarDay struct {
	Date    string             `json:"date"`
	CheckIn *db_models.CheckIn `json:"check_in"`
	IsToday bool               `json:"is_today"`
	State   CalendarState      `json:"state"`
}

type TodayCheckIn struct {
	Date    string             `json:"date"`
	Done    bool               `json:"done"`
	CheckIn *db_models.CheckIn `json:"check_in,omitempty"`
}

type Insight struct {
	HabitID  string `json:"habit_id"`
	Content  string `json:"content"`
	Fallback bool   `json:"fallback"`
}
