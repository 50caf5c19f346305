package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TestType string

const (
	TestExecutive TestType = "executive"
	TestReward    TestType = "reward"
	TestSabotage  TestType = "sabotage"
)

func (t TestType) Valid() bool {
	switch t {
	case TestExecutive, TestReward, TestSabotage:
		return true
	}
	return false
}

type TestResult struct {
	BaseModel
	AccountID   uuid.UUID                          `gorm:"type:uuid;not null;index:idx_test_result_account_type,priority:1" json:"account_id"`
	TestType    TestType                           `gorm:"type:varchar(16);not null;index:idx_test_result_account_type,priority:2" json:"test_type"`
	Score       int                                `gorm:"not null" json:"score"`
	Archetype   string                             `gorm:"not null" json:"archetype"`
	Answers     datatypes.JSONType[map[string]int] `json:"answers"`
	CompletedAt time.Time                          `gorm:"not null;index" json:"completed_at"`
}
