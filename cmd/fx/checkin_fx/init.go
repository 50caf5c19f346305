package checkin_fx

import (
	"go.uber.org/fx"

	"menteviva/internal/repositories"
	"menteviva/internal/services"
)

var Module = fx.Provide(
	repositories.NewCheckInRepository,
	services.NewCheckInService)
