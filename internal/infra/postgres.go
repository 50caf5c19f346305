package infra

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"menteviva/internal/config"
	"menteviva/internal/models/db_models"
)

// Models lists every table owned by the service, in dependency order.
var Models = []interface{}{
	&db_models.Account{},
	&db_models.Habit{},
	&db_models.CheckIn{},
	&db_models.DailyQuote{},
	&db_models.TestResult{},
}

func InitPostgresql(cfg *config.Config, logger *log.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	return db, nil
}

// NewGormConfig enables error translation so unique index violations surface
// as gorm.ErrDuplicatedKey regardless of the driver.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB, logger *log.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting database instance", "err", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", "err", err)
	} else {
		logger.Info("PostgreSQL database connection closed successfully")
	}
}

func StartTransaction(db *gorm.DB) (*gorm.DB, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// ReleaseTransaction commits tx when err is nil and rolls it back otherwise.
// It returns the commit error, or err unchanged.
func ReleaseTransaction(tx *gorm.DB, err error) error {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rollbackErr)
		}
		return err
	}
	return tx.Commit().Error
}
