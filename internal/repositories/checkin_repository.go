package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menteviva/internal/models/db_models"
	"menteviva/pkg/utils"
)

type CheckInRepository interface {
	Insert(ctx context.Context, checkIn *db_models.CheckIn) error
	ListByHabit(ctx context.Context, habitID uuid.UUID) ([]db_models.CheckIn, error)
	ListRecentByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]db_models.CheckIn, error)
	FindByHabitAndDate(ctx context.Context, habitID uuid.UUID, date string) (*db_models.CheckIn, error)
}

type checkInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

// Insert relies on idx_checkin_habit_date to reject a second check-in for
// the same habit and day.
func (r *checkInRepository) Insert(ctx context.Context, checkIn *db_models.CheckIn) error {
	err := r.db.WithContext(ctx).Create(checkIn).Error
	if isUniqueViolation(err) {
		return utils.ErrCheckInExists
	}
	return err
}

func (r *checkInRepository) ListByHabit(ctx context.Context, habitID uuid.UUID) ([]db_models.CheckIn, error) {
	var checkIns []db_models.CheckIn
	err := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("date DESC").
		Find(&checkIns).Error
	return checkIns, err
}

func (r *checkInRepository) ListRecentByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]db_models.CheckIn, error) {
	var checkIns []db_models.CheckIn
	err := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("date DESC").
		Limit(limit).
		Find(&checkIns).Error
	return checkIns, err
}

func (r *checkInRepository) FindByHabitAndDate(ctx context.Context, habitID uuid.UUID, date string) (*db_models.CheckIn, error) {
	var checkIn db_models.CheckIn
	err := r.db.WithContext(ctx).
		Where("habit_id = ? AND date = ?", habitID, date).
		First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &checkIn, nil
}
