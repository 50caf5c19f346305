package prompt_fx

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"go.uber.org/fx"

	"menteviva/internal/config"
	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	services.NewPromptService)

// ProvideTextGenerator builds the configured AI client. Without an API key
// the generator is nil and every prompt falls back to static text.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, logger *log.Logger) (utils.TextGenerator, error) {
	apiKey, model := cfg.GeminiAPIKey, cfg.GeminiModel
	if cfg.AIProvider == "openai" {
		apiKey, model = cfg.OpenAIAPIKey, cfg.OpenAIModel
	}

	generator, err := utils.NewTextGenerator(cfg.AIProvider, apiKey, model)
	if err != nil {
		return nil, err
	}
	if generator == nil {
		logger.Warn("AI provider not configured, using fallback content", "provider", cfg.AIProvider)
		return nil, nil
	}
	closeOnStop(lc, generator)
	logger.Info("text generator ready", "provider", cfg.AIProvider)
	return generator, nil
}

// closeOnStop releases clients that hold connections, such as Gemini's.
func closeOnStop(lc fx.Lifecycle, generator utils.TextGenerator) {
	closer, ok := generator.(io.Closer)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close()
		},
	})
}
