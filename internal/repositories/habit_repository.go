package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menteviva/internal/infra"
	"menteviva/internal/models/db_models"
	"menteviva/pkg/utils"
)

type HabitRepository interface {
	Insert(ctx context.Context, habit *db_models.Habit) error
	FindByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*db_models.Habit, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Habit, error)
	FindActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Habit, error)
	CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	Update(ctx context.Context, id, accountID uuid.UUID, updates map[string]interface{}) error
	DeleteWithCheckIns(ctx context.Context, id, accountID uuid.UUID) error
	// ListActiveWithOwner returns every active habit with its Account loaded.
	ListActiveWithOwner(ctx context.Context) ([]db_models.Habit, error)
}

type habitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Insert(ctx context.Context, habit *db_models.Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *habitRepository) FindByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*db_models.Habit, error) {
	var habit db_models.Habit
	err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &habit, nil
}

func (r *habitRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Habit, error) {
	var habits []db_models.Habit
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&habits).Error
	return habits, err
}

func (r *habitRepository) FindActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Habit, error) {
	var habits []db_models.Habit
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND is_active = ?", accountID, true).
		Order("created_at DESC").
		Find(&habits).Error
	return habits, err
}

func (r *habitRepository) CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Habit{}).
		Where("account_id = ? AND is_active = ?", accountID, true).
		Count(&count).Error
	return count, err
}

func (r *habitRepository) Update(ctx context.Context, id, accountID uuid.UUID, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Habit{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrHabitNotFound
	}
	return nil
}

// DeleteWithCheckIns removes the habit and all of its check-ins in one
// transaction.
func (r *habitRepository) DeleteWithCheckIns(ctx context.Context, id, accountID uuid.UUID) (err error) {
	tx, err := infra.StartTransaction(r.db.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() {
		err = infra.ReleaseTransaction(tx, err)
	}()

	res := tx.Unscoped().
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&db_models.Habit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrHabitNotFound
	}

	return tx.Unscoped().
		Where("habit_id = ?", id).
		Delete(&db_models.CheckIn{}).Error
}

func (r *habitRepository) ListActiveWithOwner(ctx context.Context) ([]db_models.Habit, error) {
	var habits []db_models.Habit
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&habits).Error
	return habits, err
}
