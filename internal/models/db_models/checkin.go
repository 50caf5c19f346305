package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CheckInStatus string

const (
	StatusCompleted CheckInStatus = "completed"
	StatusPartial   CheckInStatus = "partial"
	StatusMissed    CheckInStatus = "missed"
)

func (s CheckInStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPartial, StatusMissed:
		return true
	}
	return false
}

// Succeeded is true for completed and partial check-ins.
func (s CheckInStatus) Succeeded() bool {
	return s == StatusCompleted || s == StatusPartial
}

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

func (t TimeOfDay) Valid() bool {
	switch t {
	case Morning, Afternoon, Evening:
		return true
	}
	return false
}

// CheckIn is one day's record for a habit. (habit_id, date) is unique.
type CheckIn struct {
	BaseModel
	HabitID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_checkin_habit_date,priority:1" json:"habit_id"`
	AccountID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Date             string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_checkin_habit_date,priority:2" json:"date"` // YYYY-MM-DD
	Status           CheckInStatus  `gorm:"type:varchar(16);not null" json:"status"`
	Challenges       pq.StringArray `gorm:"type:text[]" json:"challenges"`
	Motivations      pq.StringArray `gorm:"type:text[]" json:"motivations"`
	SabotagePatterns pq.StringArray `gorm:"type:text[]" json:"sabotage_patterns"`
	TimeOfDay        *TimeOfDay     `gorm:"type:varchar(16)" json:"time_of_day,omitempty"`
	EnergyLevel      int            `gorm:"not null;check:energy_level >= 1 AND energy_level <= 10" json:"energy_level"`
	Satisfaction     int            `gorm:"not null;check:satisfaction >= 1 AND satisfaction <= 10" json:"satisfaction"`
	Mood             int            `gorm:"not null;check:mood >= 1 AND mood <= 10" json:"mood"`
	Reflection       string         `gorm:"type:text" json:"reflection"`
}

// Day parses Date into a UTC-midnight time; the zero time when malformed.
func (c *CheckIn) Day() time.Time {
	t, err := time.Parse("2006-01-02", c.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
