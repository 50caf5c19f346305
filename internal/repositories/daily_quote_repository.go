package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menteviva/internal/models/db_models"
)

// ErrQuoteDuplicate is returned when (account, date) already has a quote.
var ErrQuoteDuplicate = errors.New("quote already stored for this date")

type DailyQuoteRepository interface {
	Insert(ctx context.Context, quote *db_models.DailyQuote) error
	FindByAccountAndDate(ctx context.Context, accountID uuid.UUID, date string) (*db_models.DailyQuote, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.DailyQuote, error)
}

type dailyQuoteRepository struct {
	db *gorm.DB
}

func NewDailyQuoteRepository(db *gorm.DB) DailyQuoteRepository {
	return &dailyQuoteRepository{db: db}
}

func (r *dailyQuoteRepository) Insert(ctx context.Context, quote *db_models.DailyQuote) error {
	err := r.db.WithContext(ctx).Create(quote).Error
	if isUniqueViolation(err) {
		return ErrQuoteDuplicate
	}
	return err
}

func (r *dailyQuoteRepository) FindByAccountAndDate(ctx context.Context, accountID uuid.UUID, date string) (*db_models.DailyQuote, error) {
	var quote db_models.DailyQuote
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND date = ?", accountID, date).
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

func (r *dailyQuoteRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.DailyQuote, error) {
	var quotes []db_models.DailyQuote
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC").
		Limit(limit).
		Find(&quotes).Error
	return quotes, err
}
