package services

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/response_models"
	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

const quoteHistoryLimit = 30

type QuoteServiceInterface interface {
	TodayQuote(ctx context.Context, userID uuid.UUID) (*response_models.TodayQuote, error)
	Reveal(ctx context.Context, userID uuid.UUID) (*response_models.RevealResult, error)
	ListQuotes(ctx context.Context, userID uuid.UUID) ([]db_models.DailyQuote, error)
}

// QuoteService gates the AI quote to one reveal per user per calendar day.
// The unlock state is the presence of today's DailyQuote row.
type QuoteService struct {
	quoteRepo     repositories.DailyQuoteRepository
	accountRepo   repositories.AccountRepository
	promptService PromptServiceInterface
	clock         Clock
	logger        *log.Logger
}

func NewQuoteService(
	quoteRepo repositories.DailyQuoteRepository,
	accountRepo repositories.AccountRepository,
	promptService PromptServiceInterface,
	clock Clock,
	logger *log.Logger,
) QuoteServiceInterface {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		accountRepo:   accountRepo,
		promptService: promptService,
		clock:         clock,
		logger:        logger,
	}
}

func (q *QuoteService) today(ctx context.Context, userID uuid.UUID) (string, error) {
	day, err := userToday(ctx, q.accountRepo, userID, q.clock)
	if err != nil {
		return "", err
	}
	return utils.FormatDate(day), nil
}

func (q *QuoteService) TodayQuote(ctx context.Context, userID uuid.UUID) (*response_models.TodayQuote, error) {
	date, err := q.today(ctx, userID)
	if err != nil {
		return nil, err
	}
	quote, err := q.quoteRepo.FindByAccountAndDate(ctx, userID, date)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := &response_models.TodayQuote{Date: date, State: response_models.QuoteLocked}
	if quote != nil {
		result.State = response_models.QuoteUnlocked
		result.Quote = quote
	}
	return result, nil
}

// Reveal generates and stores today's quote. A second reveal on the same day
// returns the stored quote without calling the generator.
func (q *QuoteService) Reveal(ctx context.Context, userID uuid.UUID) (*response_models.RevealResult, error) {
	date, err := q.today(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := q.quoteRepo.FindByAccountAndDate(ctx, userID, date)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return &response_models.RevealResult{Quote: existing, AlreadyRevealed: true}, nil
	}

	generated := q.promptService.DailyQuote(ctx)
	quote := &db_models.DailyQuote{
		AccountID: userID,
		Date:      date,
		Content:   generated.Content,
	}
	if err := q.quoteRepo.Insert(ctx, quote); err != nil {
		if !errors.Is(err, repositories.ErrQuoteDuplicate) {
			return nil, utils.ErrDatabaseError
		}
		// lost a concurrent reveal; the stored row wins
		q.logger.Debug("concurrent quote reveal", "user_id", userID, "date", date)
		winner, findErr := q.quoteRepo.FindByAccountAndDate(ctx, userID, date)
		if findErr != nil || winner == nil {
			return nil, utils.ErrDatabaseError
		}
		return &response_models.RevealResult{Quote: winner, AlreadyRevealed: true}, nil
	}

	return &response_models.RevealResult{Quote: quote}, nil
}

func (q *QuoteService) ListQuotes(ctx context.Context, userID uuid.UUID) ([]db_models.DailyQuote, error) {
	quotes, err := q.quoteRepo.ListByAccount(ctx, userID, quoteHistoryLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return quotes, nil
}
