package config_fx

import (
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/fx"

	"menteviva/internal/config"
	"menteviva/internal/services"
	"menteviva/pkg/logger"
	"menteviva/pkg/utils"
)

var Module = fx.Provide(
	provideConfig,
	provideLogger,
	provideTokenManager,
	provideClock)

func provideConfig() (*config.Config, error) {
	return config.Load(".")
}

func provideLogger(cfg *config.Config) (*log.Logger, error) {
	return logger.New(logger.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		JSON:  cfg.LogJSON,
	})
}

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideClock() services.Clock {
	return time.Now
}
