package account_fx

import (
	"github.com/charmbracelet/log"
	"go.uber.org/fx"

	"menteviva/internal/config"
	"menteviva/internal/repositories"
	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

var Module = fx.Provide(
	repositories.NewAccountRepository,
	provideAccountService)

func provideAccountService(
	cfg *config.Config,
	accountRepo repositories.AccountRepository,
	tokens *utils.TokenManager,
	logger *log.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, cfg.AdminEmails, logger)
}
