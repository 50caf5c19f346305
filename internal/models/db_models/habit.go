package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MaxActiveHabits caps the habits a single account may have active at once.
const MaxActiveHabits = 3

type DurationUnit string

const (
	DurationDays   DurationUnit = "days"
	DurationWeeks  DurationUnit = "weeks"
	DurationMonths DurationUnit = "months"
)

func (u DurationUnit) Valid() bool {
	switch u {
	case DurationDays, DurationWeeks, DurationMonths:
		return true
	}
	return false
}

type Habit struct {
	BaseModel
	AccountID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_habit_account_active,priority:1" json:"account_id"`
	Name          string        `gorm:"not null" json:"name"`
	Motivation    string        `gorm:"type:text;not null" json:"motivation"`
	DaysOfWeek    pq.Int64Array `gorm:"type:integer[];not null" json:"days_of_week"` // 0=Sunday ... 6=Saturday
	DurationValue int           `gorm:"not null" json:"duration_value"`
	DurationUnit  DurationUnit  `gorm:"type:varchar(10);not null" json:"duration_unit"`
	ReminderTime  string        `gorm:"type:varchar(5);not null" json:"reminder_time"` // HH:MM
	StartDate     string        `gorm:"type:varchar(10);not null" json:"start_date"` // YYYY-MM-DD
	IsActive      bool          `gorm:"not null;index:idx_habit_account_active,priority:2" json:"is_active"`

	Account  *Account  `gorm:"foreignKey:AccountID" json:"-"`
	CheckIns []CheckIn `gorm:"foreignKey:HabitID" json:"-"`
}

// ScheduledOn reports whether the habit's schedule includes weekday.
func (h *Habit) ScheduledOn(weekday time.Weekday) bool {
	for _, d := range h.DaysOfWeek {
		if time.Weekday(d) == weekday {
			return true
		}
	}
	return false
}
