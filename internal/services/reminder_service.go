package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/response_models"
	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

const defaultReminderConcurrency = 4

var errMissingOwner = errors.New("habit owner not found")

type ReminderServiceInterface interface {
	Dispatch(ctx context.Context, now time.Time) (*response_models.DispatchReport, error)
}

type ReminderOptions struct {
	// Location decides which weekday and clock time "now" falls on.
	Location *time.Location
	// MatchTime restricts a run to habits whose reminder time equals the
	// current HH:MM.
	MatchTime   bool
	Concurrency int
}

type ReminderService struct {
	habitRepo repositories.HabitRepository
	deliverer ReminderDeliverer
	opts      ReminderOptions
	logger    *log.Logger
}

func NewReminderService(habitRepo repositories.HabitRepository, deliverer ReminderDeliverer, opts ReminderOptions, logger *log.Logger) ReminderServiceInterface {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultReminderConcurrency
	}
	return &ReminderService{
		habitRepo: habitRepo,
		deliverer: deliverer,
		opts:      opts,
		logger:    logger,
	}
}

type reminderOutcome struct {
	sent *response_models.SentReminder
	err  *response_models.ReminderError
}

// Dispatch sends one reminder for every active habit scheduled on the
// current weekday. A failing delivery is recorded and never stops the
// others; only a failure to load habits fails the run.
func (r *ReminderService) Dispatch(ctx context.Context, now time.Time) (*response_models.DispatchReport, error) {
	local := now.In(r.opts.Location)
	weekday := local.Weekday()
	clock := local.Format(utils.ClockLayout)

	habits, err := r.habitRepo.ListActiveWithOwner(ctx)
	if err != nil {
		r.logger.Error("failed to load active habits", "err", err)
		return nil, utils.ErrDatabaseError
	}

	report := &response_models.DispatchReport{
		RunAt:   now.UTC().Format(time.RFC3339),
		Weekday: int(weekday),
		Details: response_models.DispatchDetails{
			SentReminders: []response_models.SentReminder{},
			Errors:        []response_models.ReminderError{},
		},
	}

	selected := make([]db_models.Habit, 0, len(habits))
	for _, habit := range habits {
		if !habit.ScheduledOn(weekday) || (r.opts.MatchTime && habit.ReminderTime != clock) {
			report.Skipped++
			continue
		}
		selected = append(selected, habit)
	}
	report.TotalMatched = len(selected)

	r.logger.Info("dispatching reminders", "weekday", int(weekday), "time", clock, "matched", len(selected), "skipped", report.Skipped)

	outcomes := make([]reminderOutcome, len(selected))
	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for i := range selected {
		g.Go(func() error {
			outcomes[i] = r.deliverOne(ctx, &selected[i], now)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		if o.sent != nil {
			report.Details.SentReminders = append(report.Details.SentReminders, *o.sent)
		}
		if o.err != nil {
			report.Details.Errors = append(report.Details.Errors, *o.err)
		}
	}
	report.Sent = len(report.Details.SentReminders)
	report.Errors = len(report.Details.Errors)
	report.Success = true

	r.logger.Info("reminder run finished", "sent", report.Sent, "errors", report.Errors)
	return report, nil
}

func (r *ReminderService) deliverOne(ctx context.Context, habit *db_models.Habit, now time.Time) (out reminderOutcome) {
	failure := func(err error) reminderOutcome {
		r.logger.Warn("reminder delivery failed", "habit_id", habit.ID, "err", err)
		return reminderOutcome{err: &response_models.ReminderError{
			HabitID: habit.ID.String(),
			UserID:  habit.AccountID.String(),
			Error:   err.Error(),
		}}
	}
	defer func() {
		if rec := recover(); rec != nil {
			out = failure(fmt.Errorf("delivery panicked: %v", rec))
		}
	}()

	if habit.Account == nil {
		return failure(errMissingOwner)
	}

	payload := ReminderPayload{
		Whatsapp:        habit.Account.Whatsapp,
		Email:           habit.Account.Email,
		FullName:        habit.Account.FullName,
		HabitName:       habit.Name,
		HabitMotivation: habit.Motivation,
		ReminderTime:    habit.ReminderTime,
		HabitID:         habit.ID.String(),
		UserID:          habit.AccountID.String(),
		Timestamp:       now.UTC(),
	}
	if err := r.deliverer.Deliver(ctx, payload); err != nil {
		return failure(err)
	}

	return reminderOutcome{sent: &response_models.SentReminder{
		HabitID:   payload.HabitID,
		HabitName: payload.HabitName,
		UserID:    payload.UserID,
		Recipient: r.deliverer.Recipient(payload),
	}}
}
