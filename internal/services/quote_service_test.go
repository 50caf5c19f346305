package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/response_models"
	"menteviva/pkg/logger"
	"menteviva/pkg/utils"
)

func newQuoteFixture(t *testing.T, gen utils.TextGenerator, now time.Time) (QuoteServiceInterface, *fakeQuoteRepo, uuid.UUID) {
	t.Helper()
	account := &db_models.Account{Timezone: "Europe/Lisbon"}
	quotes := &fakeQuoteRepo{}
	discard := logger.Discard()
	svc := NewQuoteService(quotes, newFakeAccountRepo(account), NewPromptService(gen, discard), fixedClock(now), discard)
	return svc, quotes, account.ID
}

func TestRevealOncePerDay(t *testing.T) {
	gen := &fakeGenerator{reply: "  Pequenas vitórias contam.  "}
	svc, _, userID := newQuoteFixture(t, gen, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	state, err := svc.TodayQuote(ctx, userID)
	if err != nil {
		t.Fatalf("TodayQuote: %v", err)
	}
	if state.State != response_models.QuoteLocked || state.Quote != nil {
		t.Fatalf("expected locked state, got %+v", state)
	}

	first, err := svc.Reveal(ctx, userID)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if first.AlreadyRevealed || first.Quote.Content != "Pequenas vitórias contam." || first.Quote.Date != "2025-06-01" {
		t.Errorf("unexpected first reveal: %+v", first.Quote)
	}

	second, err := svc.Reveal(ctx, userID)
	if err != nil {
		t.Fatalf("second Reveal: %v", err)
	}
	if !second.AlreadyRevealed || second.Quote.ID != first.Quote.ID {
		t.Errorf("second reveal should return the stored quote: %+v", second)
	}
	if gen.Calls() != 1 {
		t.Errorf("generator called %d times, want 1", gen.Calls())
	}

	state, _ = svc.TodayQuote(ctx, userID)
	if state.State != response_models.QuoteUnlocked || state.Quote == nil {
		t.Errorf("expected unlocked state, got %+v", state)
	}
}

func TestRevealUnlocksAgainNextLocalDay(t *testing.T) {
	gen := &fakeGenerator{reply: "frase"}
	// 23:30 UTC in June is already 00:30 of the next day in Lisbon
	svc, quotes, userID := newQuoteFixture(t, gen, time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC))
	quotes.quotes = append(quotes.quotes, db_models.DailyQuote{AccountID: userID, Date: "2025-06-01", Content: "ontem"})

	res, err := svc.Reveal(context.Background(), userID)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if res.AlreadyRevealed || res.Quote.Date != "2025-06-02" {
		t.Errorf("unexpected reveal: %+v", res.Quote)
	}
}

// The unlock key is the account's current local date, so moving to a zone
// that is already on the next day opens a new reveal.
func TestRevealKeyFollowsCurrentTimezone(t *testing.T) {
	gen := &fakeGenerator{reply: "frase"}
	account := &db_models.Account{Timezone: "UTC"}
	accounts := newFakeAccountRepo(account)
	quotes := &fakeQuoteRepo{}
	discard := logger.Discard()
	svc := NewQuoteService(quotes, accounts, NewPromptService(gen, discard), fixedClock(time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)), discard)
	ctx := context.Background()

	first, err := svc.Reveal(ctx, account.ID)
	if err != nil || first.Quote.Date != "2025-06-01" {
		t.Fatalf("first reveal = %+v, %v", first, err)
	}

	account.Timezone = "Asia/Tokyo"
	second, err := svc.Reveal(ctx, account.ID)
	if err != nil {
		t.Fatalf("Reveal after timezone change: %v", err)
	}
	if second.AlreadyRevealed || second.Quote.Date != "2025-06-02" {
		t.Errorf("expected a new reveal keyed 2025-06-02, got %+v", second.Quote)
	}
	if gen.Calls() != 2 || len(quotes.quotes) != 2 {
		t.Errorf("generator calls = %d, stored quotes = %d", gen.Calls(), len(quotes.quotes))
	}
}

func TestRevealFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  utils.TextGenerator
		want string
	}{
		{"no generator", nil, fallbackQuoteUnconfigured},
		{"generator error", &fakeGenerator{err: errors.New("quota exceeded")}, fallbackQuoteFailed},
		{"empty reply", &fakeGenerator{reply: "   "}, fallbackQuoteEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, userID := newQuoteFixture(t, tt.gen, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
			res, err := svc.Reveal(context.Background(), userID)
			if err != nil {
				t.Fatalf("Reveal: %v", err)
			}
			if res.Quote.Content != tt.want {
				t.Errorf("content = %q, want %q", res.Quote.Content, tt.want)
			}
		})
	}
}

func TestRevealConcurrentInsertReturnsWinner(t *testing.T) {
	gen := &fakeGenerator{reply: "perdedora"}
	svc, quotes, userID := newQuoteFixture(t, gen, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	quotes.quotes = append(quotes.quotes, db_models.DailyQuote{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		AccountID: userID,
		Date:      "2025-06-01",
		Content:   "vencedora",
	})
	// the first lookup misses the row written by the other request
	quotes.skipLookup = 1

	res, err := svc.Reveal(context.Background(), userID)
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if !res.AlreadyRevealed || res.Quote.Content != "vencedora" {
		t.Errorf("expected the stored quote, got %+v", res)
	}
	if len(quotes.quotes) != 1 {
		t.Errorf("expected one stored quote, got %d", len(quotes.quotes))
	}
}

func TestRevealUnknownAccount(t *testing.T) {
	svc, _, _ := newQuoteFixture(t, nil, time.Now())
	if _, err := svc.Reveal(context.Background(), uuid.New()); !errors.Is(err, utils.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
