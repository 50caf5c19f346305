package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menteviva/internal/models/request_models"
	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

type HabitController struct {
	habitService services.HabitServiceInterface
}

func NewHabitController(habitService services.HabitServiceInterface) *HabitController {
	return &HabitController{
		habitService: habitService,
	}
}

// CreateHabit godoc
// @Summary Create a habit
// @Description Creates a habit unless the account already has the maximum of active habits
// @Tags Habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateHabitRequest true "Habit payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /habits [post]
func (h *HabitController) CreateHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	habit, err := h.habitService.CreateHabit(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, habit, "Habit created successfully")
}

// ListHabits godoc
// @Summary List habits
// @Tags Habits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /habits [get]
func (h *HabitController) ListHabits(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habits, err := h.habitService.ListHabits(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, habits, "Habits retrieved successfully")
}

// GetActiveHabits godoc
// @Summary List active habits
// @Tags Habits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /habits/active [get]
func (h *HabitController) GetActiveHabits(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habits, err := h.habitService.GetActiveHabits(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, habits, "Active habits retrieved successfully")
}

// GetLimit godoc
// @Summary Active habit limit
// @Description Returns how many habits are active and whether another can be created
// @Tags Habits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /habits/limit [get]
func (h *HabitController) GetLimit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, err := h.habitService.GetLimit(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, limit, "Habit limit retrieved successfully")
}

// GetHabit godoc
// @Summary Get a habit
// @Tags Habits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /habits/{id} [get]
func (h *HabitController) GetHabit(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	habit, err := h.habitService.GetHabit(c.Request.Context(), userID, habitID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, habit, "Habit retrieved successfully")
}

// UpdateHabit godoc
// @Summary Update a habit
// @Tags Habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Param request body request_models.UpdateHabitRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /habits/{id} [patch]
func (h *HabitController) UpdateHabit(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	var req request_models.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	habit, err := h.habitService.UpdateHabit(c.Request.Context(), userID, habitID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, habit, "Habit updated successfully")
}

// ActivateHabit godoc
// @Summary Reactivate a habit
// @Tags Habits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /habits/{id}/activate [post]
func (h *HabitController) ActivateHabit(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	if err := h.habitService.ActivateHabit(c.Request.Context(), userID, habitID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Habit activated successfully")
}

// DeactivateHabit godoc
// @Summary Deactivate a habit
// @Tags Habits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Router /habits/{id}/deactivate [post]
func (h *HabitController) DeactivateHabit(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	if err := h.habitService.DeactivateHabit(c.Request.Context(), userID, habitID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Habit deactivated successfully")
}

// DeleteHabit godoc
// @Summary Delete a habit
// @Description Deletes the habit and every check-in recorded against it
// @Tags Habits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Habit ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /habits/{id} [delete]
func (h *HabitController) DeleteHabit(c *gin.Context) {
	userID, habitID, ok := userAndHabit(c)
	if !ok {
		return
	}

	if err := h.habitService.DeleteHabit(c.Request.Context(), userID, habitID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Habit deleted successfully")
}
