package request_models

type CreateHabitRequest struct {
	Name          string `json:"name" binding:"required,max=120"`
	Motivation    string `json:"motivation" binding:"required"`
	DaysOfWeek    []int  `json:"days_of_week" binding:"required"`
	DurationValue int    `json:"duration_value" binding:"required"`
	DurationUnit  string `json:"duration_unit" binding:"required"`
	ReminderTime  string `json:"reminder_time" binding:"required"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD, defaults to today
}

type UpdateHabitRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=120"`
	Motivation    *string `json:"motivation"`
	DaysOfWeek    []int   `json:"days_of_week"`
	DurationValue *int    `json:"duration_value"`
	DurationUnit  *string `json:"duration_unit"`
	ReminderTime  *string `json:"reminder_time"`
}
