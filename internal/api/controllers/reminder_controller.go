package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

type ReminderController struct {
	reminderService services.ReminderServiceInterface
	clock           services.Clock
}

func NewReminderController(reminderService services.ReminderServiceInterface, clock services.Clock) *ReminderController {
	return &ReminderController{
		reminderService: reminderService,
		clock:           clock,
	}
}

// Dispatch godoc
// @Summary Send today's habit reminders
// @Description Called by an external scheduler. Requires the X-Cron-Secret header.
// @Tags Internal
// @Produce json
// @Param X-Cron-Secret header string true "Shared secret"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /internal/reminders/dispatch [post]
func (r *ReminderController) Dispatch(c *gin.Context) {
	report, err := r.reminderService.Dispatch(c.Request.Context(), r.clock.Now())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Reminders dispatched")
}

// Health godoc
// @Summary Liveness check
// @Tags Internal
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /healthz [get]
func Health(c *gin.Context) {
	utils.RespondWithCode(c, http.StatusOK, gin.H{"time": time.Now().UTC().Format(time.RFC3339)}, "ok")
}
