package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menteviva/internal/models/request_models"
	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

type CheckInController struct {
	checkInService services.CheckInServiceInterface
}

func NewCheckInController(checkInService services.CheckInServiceInterface) *CheckInController {
	return &CheckInController{
		checkInService: checkInService,
	}
}

// Submit godoc
// @Summary Record a check-in
// @Description Records one check-in per habit per day. Date defaults to today in the user's timezone.
// @Tags CheckIns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Param request body request_models.CheckInRequest true "Check-in payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /habits/{id}/checkins [post]
func (ctl *CheckInController) Submit(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	var req request_models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	checkIn, err := ctl.checkInService.Submit(c.Request.Context(), userID, habitID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, checkIn, "Check-in recorded successfully")
}

// List godoc
// @Summary List check-ins of a habit
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Router /habits/{id}/checkins [get]
func (ctl *CheckInController) List(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	checkIns, err := ctl.checkInService.ListCheckIns(c.Request.Context(), userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkIns, "Check-ins retrieved successfully")
}

// Today godoc
// @Summary Today's check-in
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Router /habits/{id}/checkins/today [get]
func (ctl *CheckInController) Today(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	today, err := ctl.checkInService.TodayCheckIn(c.Request.Context(), userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, today, "Today's check-in retrieved successfully")
}

// Stats godoc
// @Summary Habit statistics
// @Description Current and longest streak, success rate and totals per status
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Router /habits/{id}/stats [get]
func (ctl *CheckInController) Stats(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	stats, err := ctl.checkInService.Stats(c.Request.Context(), userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Stats retrieved successfully")
}

// Calendar godoc
// @Summary Monthly calendar
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Param month query string false "Month as YYYY-MM, defaults to the current month"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /habits/{id}/calendar [get]
func (ctl *CheckInController) Calendar(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	days, err := ctl.checkInService.Calendar(c.Request.Context(), userID, habitID, c.Query("month"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, days, "Calendar retrieved successfully")
}

// Report godoc
// @Summary Habit report
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Router /habits/{id}/report [get]
func (ctl *CheckInController) Report(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	report, err := ctl.checkInService.Report(c.Request.Context(), userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Report retrieved successfully")
}

// Insight godoc
// @Summary AI insight on recent check-ins
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Router /habits/{id}/insight [get]
func (ctl *CheckInController) Insight(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	insight, err := ctl.checkInService.Insight(c.Request.Context(), userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, insight, "Insight generated successfully")
}
