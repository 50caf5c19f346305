package utils

import "errors"

var (
	ErrDatabaseError = errors.New("database error")
	ErrValidation    = errors.New("validation error")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTimezone    = errors.New("invalid timezone")

	ErrHabitNotFound     = errors.New("habit not found")
	ErrHabitLimitReached = errors.New("active habit limit reached")
	ErrHabitInactive     = errors.New("habit is not active")
	ErrNoWeekdays        = errors.New("at least one weekday is required")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 and 6")
	ErrInvalidTime       = errors.New("reminder time must be HH:MM")
	ErrInvalidDuration   = errors.New("invalid habit duration")

	ErrCheckInExists    = errors.New("check-in already recorded for this date")
	ErrInvalidStatus    = errors.New("invalid check-in status")
	ErrInvalidTag       = errors.New("invalid check-in tag")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidScore     = errors.New("energy scores must be between 1 and 10")
	ErrFutureDate       = errors.New("check-in date cannot be in the future")
	ErrInvalidMonth     = errors.New("month must be YYYY-MM")

	ErrInvalidTestType = errors.New("invalid test type")
	ErrInvalidAnswers  = errors.New("answers must be between 1 and 5")
	ErrResultNotFound  = errors.New("test result not found")
)
