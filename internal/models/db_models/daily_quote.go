package db_models

import "github.com/google/uuid"

// DailyQuote is the single AI quote revealed by an account on Date (YYYY-MM-DD).
type DailyQuote struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quote_user_date,priority:1" json:"account_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_quote_user_date,priority:2" json:"date"`
	Content   string    `gorm:"type:text;not null" json:"content"`
}
