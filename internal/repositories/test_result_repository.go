package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menteviva/internal/models/db_models"
)

type TestResultRepository interface {
	Insert(ctx context.Context, result *db_models.TestResult) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.TestResult, error)
	FindLatestByAccountAndType(ctx context.Context, accountID uuid.UUID, testType db_models.TestType) (*db_models.TestResult, error)
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

func (r *testResultRepository) Insert(ctx context.Context, result *db_models.TestResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *testResultRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.TestResult, error) {
	var results []db_models.TestResult
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

func (r *testResultRepository) FindLatestByAccountAndType(ctx context.Context, accountID uuid.UUID, testType db_models.TestType) (*db_models.TestResult, error) {
	var result db_models.TestResult
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND test_type = ?", accountID, testType).
		Order("completed_at DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
