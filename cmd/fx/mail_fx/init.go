package mail_fx

import (
	"go.uber.org/fx"

	"menteviva/internal/config"
	"menteviva/internal/services"
)

var Module = fx.Provide(provideMailService)

// provideMailService yields nil when SMTP is not configured.
func provideMailService(cfg *config.Config) (services.IMailService, error) {
	if cfg.SMTPHost == "" {
		return nil, nil
	}
	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   cfg.SMTPFromName,
		AppName:    cfg.SMTPFromName,
		AppBaseURL: cfg.AppBaseURL,
	})
}
