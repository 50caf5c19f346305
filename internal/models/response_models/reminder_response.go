package response_models

type SentReminder struct {
	HabitID   string `json:"habit_id"`
	HabitName string `json:"habit_name"`
	UserID    string `json:"user_id"`
	Recipient string `json:"recipient"`
}

type ReminderError struct {
	HabitID string `json:"habit_id"`
	UserID  string `json:"user_id"`
	Error   string `json:"error"`
}

type DispatchDetails struct {
	SentReminders []SentReminder  `json:"sent_reminders"`
	Errors        []ReminderError `json:"errors"`
}

// DispatchReport summarises one reminder run.
type DispatchReport struct {
	Success      bool            `json:"success"`
	RunAt        string          `json:"run_at"`
	Weekday      int             `json:"weekday"`
	TotalMatched int             `json:"total_matched"`
	Skipped      int             `json:"skipped"`
	Sent         int             `json:"sent"`
	Errors       int             `json:"errors"`
	Details      DispatchDetails `json:"details"`
}
