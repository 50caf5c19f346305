package response_models

import "menteviva/internal/models/db_models"

type QuoteState string

const (
	QuoteLocked   QuoteState = "locked"
	QuoteUnlocked QuoteState = "unlocked"
)

type TodayQuote struct {
	Date  string                `json:"date"`
	State QuoteState            `json:"state"`
	Quote *db_models.DailyQuote `json:"quote,omitempty"`
}

type RevealResult struct {
	Quote           *db_models.DailyQuote `json:"quote"`
	AlreadyRevealed bool                  `json:"already_revealed"`
}
