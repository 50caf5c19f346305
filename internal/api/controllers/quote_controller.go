package controllers

import (
	"github.com/gin-gonic/gin"

	"menteviva/internal/services"
	"menteviva/pkg/utils"
)

type QuoteController struct {
	quoteService services.QuoteServiceInterface
}

func NewQuoteController(quoteService services.QuoteServiceInterface) *QuoteController {
	return &QuoteController{
		quoteService: quoteService,
	}
}

// Today godoc
// @Summary Today's quote state
// @Description Locked until the user reveals today's quote
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /quotes/today [get]
func (q *QuoteController) Today(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	state, err := q.quoteService.TodayQuote(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, state, "Quote state retrieved successfully")
}

// Reveal godoc
// @Summary Reveal today's quote
// @Description Generates the quote once per day; later calls return the stored quote
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Success 201 {object} utils.APIResponse
// @Router /quotes/today/reveal [post]
func (q *QuoteController) Reveal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := q.quoteService.Reveal(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if result.AlreadyRevealed {
		utils.RespondSuccess(c, result, "Quote already revealed today")
		return
	}
	utils.RespondCreated(c, result, "Quote revealed successfully")
}

// List godoc
// @Summary Revealed quotes history
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /quotes [get]
func (q *QuoteController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	quotes, err := q.quoteService.ListQuotes(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, quotes, "Quotes retrieved successfully")
}
