package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menteviva/internal/models/request_models"
	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

type TestResultController struct {
	testResultService services.TestResultServiceInterface
}

func NewTestResultController(testResultService services.TestResultServiceInterface) *TestResultController {
	return &TestResultController{
		testResultService: testResultService,
	}
}

// Save godoc
// @Summary Save a self-assessment result
// @Description Scores Likert answers (1-5) and derives the archetype
// @Tags Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SaveTestResultRequest true "Answers"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tests/results [post]
func (t *TestResultController) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.SaveTestResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := t.testResultService.SaveResult(c.Request.Context(), userID, req.TestType, req.Answers)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "Test result saved successfully")
}

// List godoc
// @Summary List self-assessment results
// @Tags Tests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /tests/results [get]
func (t *TestResultController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	results, err := t.testResultService.ListResults(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, results, "Test results retrieved successfully")
}

// Latest godoc
// @Summary Latest result for a test type
// @Tags Tests
// @Produce json
// @Security BearerAuth
// @Param type path string true "executive, reward or sabotage"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tests/results/latest/{type} [get]
func (t *TestResultController) Latest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := t.testResultService.LatestResult(c.Request.Context(), userID, c.Param("type"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Test result retrieved successfully")
}
