package controllers_fx

import (
	"go.uber.org/fx"

	"menteviva/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewHabitController),
	fx.Provide(controllers.NewCheckInController),
	fx.Provide(controllers.NewQuoteController),
	fx.Provide(controllers.NewTestResultController),
	fx.Provide(controllers.NewReminderController))
