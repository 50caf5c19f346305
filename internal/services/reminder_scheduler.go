package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

const reminderRunTimeout = 5 * time.Minute

// ReminderScheduler triggers Dispatch in-process on a cron schedule. It is
// an alternative to calling the internal dispatch endpoint from outside.
type ReminderScheduler struct {
	reminders ReminderServiceInterface
	cron      *cron.Cron
	spec      string
	logger    *log.Logger
}

func NewReminderScheduler(reminders ReminderServiceInterface, spec string, loc *time.Location, logger *log.Logger) *ReminderScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderScheduler{
		reminders: reminders,
		cron:      cron.New(cron.WithLocation(loc)),
		spec:      spec,
		logger:    logger,
	}
}

func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("reminder scheduler started", "spec", s.spec)
	return nil
}

func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminder scheduler stopped")
}

func (s *ReminderScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), reminderRunTimeout)
	defer cancel()

	if _, err := s.reminders.Dispatch(ctx, time.Now()); err != nil {
		s.logger.Error("scheduled reminder run failed", "err", err)
	}
}
