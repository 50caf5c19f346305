package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/request_models"
	"menteviva/internal/models/response_models"
	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

type HabitServiceInterface interface {
	CanCreate(ctx context.Context, userID uuid.UUID) (bool, error)
	GetLimit(ctx context.Context, userID uuid.UUID) (*response_models.HabitLimit, error)
	CreateHabit(ctx context.Context, userID uuid.UUID, req request_models.CreateHabitRequest) (*db_models.Habit, error)
	ListHabits(ctx context.Context, userID uuid.UUID) ([]db_models.Habit, error)
	GetActiveHabits(ctx context.Context, userID uuid.UUID) ([]db_models.Habit, error)
	GetHabit(ctx context.Context, userID, habitID uuid.UUID) (*db_models.Habit, error)
	UpdateHabit(ctx context.Context, userID, habitID uuid.UUID, req request_models.UpdateHabitRequest) (*db_models.Habit, error)
	ActivateHabit(ctx context.Context, userID, habitID uuid.UUID) error
	DeactivateHabit(ctx context.Context, userID, habitID uuid.UUID) error
	DeleteHabit(ctx context.Context, userID, habitID uuid.UUID) error
}

type HabitService struct {
	habitRepo   repositories.HabitRepository
	accountRepo repositories.AccountRepository
	clock       Clock
}

func NewHabitService(habitRepo repositories.HabitRepository, accountRepo repositories.AccountRepository, clock Clock) HabitServiceInterface {
	return &HabitService{
		habitRepo:   habitRepo,
		accountRepo: accountRepo,
		clock:       clock,
	}
}

// CanCreate reports whether the user is below the active-habit cap.
func (h *HabitService) CanCreate(ctx context.Context, userID uuid.UUID) (bool, error) {
	count, err := h.habitRepo.CountActiveByAccount(ctx, userID)
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	return count < db_models.MaxActiveHabits, nil
}

func (h *HabitService) GetLimit(ctx context.Context, userID uuid.UUID) (*response_models.HabitLimit, error) {
	count, err := h.habitRepo.CountActiveByAccount(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	remaining := db_models.MaxActiveHabits - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &response_models.HabitLimit{
		ActiveCount:    int(count),
		MaxHabits:      db_models.MaxActiveHabits,
		RemainingSlots: remaining,
		CanCreate:      remaining > 0,
	}, nil
}

// CreateHabit re-checks the cap right before inserting. Two concurrent
// creates can still both pass the check.
func (h *HabitService) CreateHabit(ctx context.Context, userID uuid.UUID, req request_models.CreateHabitRequest) (*db_models.Habit, error) {
	name := strings.TrimSpace(req.Name)
	motivation := strings.TrimSpace(req.Motivation)
	if name == "" || motivation == "" {
		return nil, utils.ErrValidation
	}
	days, err := normaliseWeekdays(req.DaysOfWeek)
	if err != nil {
		return nil, err
	}
	reminder, err := utils.ParseClock(req.ReminderTime)
	if err != nil {
		return nil, err
	}
	unit, err := validateDuration(req.DurationValue, req.DurationUnit)
	if err != nil {
		return nil, err
	}

	startDate := req.StartDate
	if startDate == "" {
		today, err := userToday(ctx, h.accountRepo, userID, h.clock)
		if err != nil {
			return nil, err
		}
		startDate = utils.FormatDate(today)
	} else if _, err := utils.ParseDate(startDate); err != nil {
		return nil, err
	}

	ok, err := h.CanCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.ErrHabitLimitReached
	}

	habit := &db_models.Habit{
		AccountID:     userID,
		Name:          name,
		Motivation:    motivation,
		DaysOfWeek:    days,
		DurationValue: req.DurationValue,
		DurationUnit:  unit,
		ReminderTime:  reminder,
		StartDate:     startDate,
		IsActive:      true,
	}
	if err := h.habitRepo.Insert(ctx, habit); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return habit, nil
}

func (h *HabitService) ListHabits(ctx context.Context, userID uuid.UUID) ([]db_models.Habit, error) {
	habits, err := h.habitRepo.ListByAccount(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return habits, nil
}

func (h *HabitService) GetActiveHabits(ctx context.Context, userID uuid.UUID) ([]db_models.Habit, error) {
	habits, err := h.habitRepo.FindActiveByAccount(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return habits, nil
}

func (h *HabitService) GetHabit(ctx context.Context, userID, habitID uuid.UUID) (*db_models.Habit, error) {
	habit, err := h.habitRepo.FindByIDAndAccount(ctx, habitID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if habit == nil {
		return nil, utils.ErrHabitNotFound
	}
	return habit, nil
}

func (h *HabitService) UpdateHabit(ctx context.Context, userID, habitID uuid.UUID, req request_models.UpdateHabitRequest) (*db_models.Habit, error) {
	habit, err := h.GetHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.ErrValidation
		}
		updates["name"] = name
	}
	if req.Motivation != nil {
		motivation := strings.TrimSpace(*req.Motivation)
		if motivation == "" {
			return nil, utils.ErrValidation
		}
		updates["motivation"] = motivation
	}
	if req.DaysOfWeek != nil {
		days, err := normaliseWeekdays(req.DaysOfWeek)
		if err != nil {
			return nil, err
		}
		updates["days_of_week"] = days
	}
	if req.ReminderTime != nil {
		reminder, err := utils.ParseClock(*req.ReminderTime)
		if err != nil {
			return nil, err
		}
		updates["reminder_time"] = reminder
	}
	if req.DurationValue != nil || req.DurationUnit != nil {
		value := habit.DurationValue
		if req.DurationValue != nil {
			value = *req.DurationValue
		}
		unit := string(habit.DurationUnit)
		if req.DurationUnit != nil {
			unit = *req.DurationUnit
		}
		validUnit, err := validateDuration(value, unit)
		if err != nil {
			return nil, err
		}
		updates["duration_value"] = value
		updates["duration_unit"] = validUnit
	}

	if len(updates) == 0 {
		return habit, nil
	}
	if err := h.habitRepo.Update(ctx, habitID, userID, updates); err != nil {
		if errors.Is(err, utils.ErrHabitNotFound) {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}
	return h.GetHabit(ctx, userID, habitID)
}

// ActivateHabit turns a paused habit back on, subject to the same cap as
// creation.
func (h *HabitService) ActivateHabit(ctx context.Context, userID, habitID uuid.UUID) error {
	habit, err := h.GetHabit(ctx, userID, habitID)
	if err != nil {
		return err
	}
	if habit.IsActive {
		return nil
	}

	ok, err := h.CanCreate(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrHabitLimitReached
	}
	return h.setActive(ctx, userID, habitID, true)
}

func (h *HabitService) DeactivateHabit(ctx context.Context, userID, habitID uuid.UUID) error {
	if _, err := h.GetHabit(ctx, userID, habitID); err != nil {
		return err
	}
	return h.setActive(ctx, userID, habitID, false)
}

func (h *HabitService) setActive(ctx context.Context, userID, habitID uuid.UUID, active bool) error {
	err := h.habitRepo.Update(ctx, habitID, userID, map[string]interface{}{"is_active": active})
	if err != nil {
		if errors.Is(err, utils.ErrHabitNotFound) {
			return err
		}
		return utils.ErrDatabaseError
	}
	return nil
}

// DeleteHabit removes the habit together with its check-ins.
func (h *HabitService) DeleteHabit(ctx context.Context, userID, habitID uuid.UUID) error {
	err := h.habitRepo.DeleteWithCheckIns(ctx, habitID, userID)
	if err != nil {
		if errors.Is(err, utils.ErrHabitNotFound) {
			return err
		}
		return utils.ErrDatabaseError
	}
	return nil
}

// normaliseWeekdays validates 0..6 (0 = Sunday), drops duplicates and sorts.
func normaliseWeekdays(days []int) (pq.Int64Array, error) {
	if len(days) == 0 {
		return nil, utils.ErrNoWeekdays
	}
	seen := make(map[int]struct{}, len(days))
	out := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, utils.ErrInvalidWeekday
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, int64(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func validateDuration(value int, unit string) (db_models.DurationUnit, error) {
	u := db_models.DurationUnit(strings.ToLower(unit))
	if value <= 0 || !u.Valid() {
		return "", utils.ErrInvalidDuration
	}
	return u, nil
}
