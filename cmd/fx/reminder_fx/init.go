package reminder_fx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/fx"

	"menteviva/internal/config"
	"menteviva/internal/repositories"
	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(
		provideDeliverer,
		provideReminderService),
	fx.Invoke(startScheduler))

func provideDeliverer(lc fx.Lifecycle, cfg *config.Config, mail services.IMailService, logger *log.Logger) (services.ReminderDeliverer, error) {
	switch cfg.Channel {
	case "webhook", "":
		if cfg.WebhookURL == "" {
			logger.Warn("REMINDER_WEBHOOK_URL not set, reminder runs will record every habit as failed")
			return services.NewUnconfiguredDeliverer("webhook url not configured"), nil
		}
		return services.NewWebhookDeliverer(cfg.WebhookURL, cfg.WebhookTimeout), nil
	case "email":
		if mail == nil {
			return nil, errors.New("SMTP_HOST is required for the email channel")
		}
		return services.NewEmailDeliverer(mail), nil
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required for the kafka channel")
		}
		writer := services.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return writer.Close()
			},
		})
		return services.NewKafkaDeliverer(writer), nil
	default:
		return nil, fmt.Errorf("unsupported reminder channel: %s. Use 'webhook', 'email' or 'kafka'", cfg.Channel)
	}
}

func reminderLocation(cfg *config.Config) (*time.Location, error) {
	return utils.LoadLocation(cfg.Timezone)
}

func provideReminderService(
	cfg *config.Config,
	habitRepo repositories.HabitRepository,
	deliverer services.ReminderDeliverer,
	logger *log.Logger,
) (services.ReminderServiceInterface, error) {
	loc, err := reminderLocation(cfg)
	if err != nil {
		return nil, err
	}
	return services.NewReminderService(habitRepo, deliverer, services.ReminderOptions{
		Location:    loc,
		MatchTime:   cfg.MatchTime,
		Concurrency: cfg.Concurrency,
	}, logger), nil
}

// startScheduler runs reminders in process when REMINDER_CRON_SPEC is set.
func startScheduler(lc fx.Lifecycle, cfg *config.Config, reminders services.ReminderServiceInterface, logger *log.Logger) error {
	if cfg.CronSpec == "" {
		return nil
	}
	loc, err := reminderLocation(cfg)
	if err != nil {
		return err
	}

	scheduler := services.NewReminderScheduler(reminders, cfg.CronSpec, loc, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
	return nil
}
