package services

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"menteviva/internal/models/db_models"
	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

const (
	likertMin = 1
	likertMax = 5
)

// archetypes holds the low, mid and high band labels per test.
var archetypes = map[db_models.TestType][3]string{
	db_models.TestExecutive: {"Explorador Disperso", "Planejador em Construção", "Executor Estratégico"},
	db_models.TestReward:    {"Buscador de Recompensa Imediata", "Equilibrista de Recompensas", "Investidor de Longo Prazo"},
	db_models.TestSabotage:  {"Consciente dos Padrões", "Sabotador Ocasional", "Sabotador Recorrente"},
}

type TestResultServiceInterface interface {
	SaveResult(ctx context.Context, userID uuid.UUID, testType string, answers map[string]int) (*db_models.TestResult, error)
	ListResults(ctx context.Context, userID uuid.UUID) ([]db_models.TestResult, error)
	LatestResult(ctx context.Context, userID uuid.UUID, testType string) (*db_models.TestResult, error)
}

type TestResultService struct {
	resultRepo repositories.TestResultRepository
	clock      Clock
}

func NewTestResultService(resultRepo repositories.TestResultRepository, clock Clock) TestResultServiceInterface {
	return &TestResultService{
		resultRepo: resultRepo,
		clock:      clock,
	}
}

func (t *TestResultService) SaveResult(ctx context.Context, userID uuid.UUID, testType string, answers map[string]int) (*db_models.TestResult, error) {
	tt, err := parseTestType(testType)
	if err != nil {
		return nil, err
	}
	score, err := ScoreAnswers(answers)
	if err != nil {
		return nil, err
	}

	result := &db_models.TestResult{
		AccountID:   userID,
		TestType:    tt,
		Score:       score,
		Archetype:   Archetype(tt, score),
		Answers:     datatypes.NewJSONType(answers),
		CompletedAt: t.clock.Now().UTC(),
	}
	if err := t.resultRepo.Insert(ctx, result); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return result, nil
}

func (t *TestResultService) ListResults(ctx context.Context, userID uuid.UUID) ([]db_models.TestResult, error) {
	results, err := t.resultRepo.ListByAccount(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return results, nil
}

func (t *TestResultService) LatestResult(ctx context.Context, userID uuid.UUID, testType string) (*db_models.TestResult, error) {
	tt, err := parseTestType(testType)
	if err != nil {
		return nil, err
	}
	result, err := t.resultRepo.FindLatestByAccountAndType(ctx, userID, tt)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if result == nil {
		return nil, utils.ErrResultNotFound
	}
	return result, nil
}

func parseTestType(s string) (db_models.TestType, error) {
	tt := db_models.TestType(strings.ToLower(strings.TrimSpace(s)))
	if !tt.Valid() {
		return "", utils.ErrInvalidTestType
	}
	return tt, nil
}

// ScoreAnswers maps Likert answers (1..5) onto 0..100.
func ScoreAnswers(answers map[string]int) (int, error) {
	if len(answers) == 0 {
		return 0, utils.ErrInvalidAnswers
	}
	sum := 0
	for _, v := range answers {
		if v < likertMin || v > likertMax {
			return 0, utils.ErrInvalidAnswers
		}
		sum += v
	}
	n := len(answers)
	span := float64((likertMax - likertMin) * n)
	return int(math.Round(100 * float64(sum-likertMin*n) / span)), nil
}

// Archetype labels a score: below 40 is low, below 70 is mid, the rest high.
func Archetype(testType db_models.TestType, score int) string {
	labels, ok := archetypes[testType]
	if !ok {
		return ""
	}
	switch {
	case score < 40:
		return labels[0]
	case score < 70:
		return labels[1]
	default:
		return labels[2]
	}
}
