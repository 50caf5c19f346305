package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/request_models"
	"menteviva/internal/models/response_models"
	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

const defaultEnergyScore = 5

type CheckInServiceInterface interface {
	Submit(ctx context.Context, userID, habitID uuid.UUID, req request_models.CheckInRequest) (*db_models.CheckIn, error)
	ListCheckIns(ctx context.Context, userID, habitID uuid.UUID) ([]db_models.CheckIn, error)
	TodayCheckIn(ctx context.Context, userID, habitID uuid.UUID) (*response_models.TodayCheckIn, error)
	Stats(ctx context.Context, userID, habitID uuid.UUID) (*response_models.HabitStats, error)
	Calendar(ctx context.Context, userID, habitID uuid.UUID, month string) ([]response_models.CalendarDay, error)
	Report(ctx context.Context, userID, habitID uuid.UUID) (*response_models.Report, error)
	Insight(ctx context.Context, userID, habitID uuid.UUID) (*response_models.Insight, error)
}

type CheckInService struct {
	checkInRepo   repositories.CheckInRepository
	habitRepo     repositories.HabitRepository
	accountRepo   repositories.AccountRepository
	promptService PromptServiceInterface
	clock         Clock
}

func NewCheckInService(
	checkInRepo repositories.CheckInRepository,
	habitRepo repositories.HabitRepository,
	accountRepo repositories.AccountRepository,
	promptService PromptServiceInterface,
	clock Clock,
) CheckInServiceInterface {
	return &CheckInService{
		checkInRepo:   checkInRepo,
		habitRepo:     habitRepo,
		accountRepo:   accountRepo,
		promptService: promptService,
		clock:         clock,
	}
}

func (s *CheckInService) ownedHabit(ctx context.Context, userID, habitID uuid.UUID) (*db_models.Habit, error) {
	habit, err := s.habitRepo.FindByIDAndAccount(ctx, habitID, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if habit == nil {
		return nil, utils.ErrHabitNotFound
	}
	return habit, nil
}

// Submit records one check-in. The date defaults to today in the user's
// timezone; past dates are accepted, future ones are not.
func (s *CheckInService) Submit(ctx context.Context, userID, habitID uuid.UUID, req request_models.CheckInRequest) (*db_models.CheckIn, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	if !habit.IsActive {
		return nil, utils.ErrHabitInactive
	}

	checkIn, err := buildCheckIn(req)
	if err != nil {
		return nil, err
	}

	today, err := userToday(ctx, s.accountRepo, userID, s.clock)
	if err != nil {
		return nil, err
	}
	date := utils.FormatDate(today)
	if req.Date != "" {
		day, err := utils.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		if day.After(today) {
			return nil, utils.ErrFutureDate
		}
		date = utils.FormatDate(day)
	}

	existing, err := s.checkInRepo.FindByHabitAndDate(ctx, habitID, date)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrCheckInExists
	}

	checkIn.HabitID = habitID
	checkIn.AccountID = userID
	checkIn.Date = date
	if err := s.checkInRepo.Insert(ctx, checkIn); err != nil {
		if errors.Is(err, utils.ErrCheckInExists) {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}
	return checkIn, nil
}

func buildCheckIn(req request_models.CheckInRequest) (*db_models.CheckIn, error) {
	status := db_models.CheckInStatus(strings.ToLower(req.Status))
	if !status.Valid() {
		return nil, utils.ErrInvalidStatus
	}

	challenges, err := validateTags(req.Challenges, db_models.ChallengeTags)
	if err != nil {
		return nil, err
	}
	motivations, err := validateTags(req.Motivations, db_models.MotivationTags)
	if err != nil {
		return nil, err
	}
	sabotage, err := validateTags(req.SabotagePatterns, db_models.SabotageTags)
	if err != nil {
		return nil, err
	}

	var timeOfDay *db_models.TimeOfDay
	if req.TimeOfDay != "" {
		t := db_models.TimeOfDay(strings.ToLower(req.TimeOfDay))
		if !t.Valid() {
			return nil, utils.ErrInvalidTimeOfDay
		}
		timeOfDay = &t
	}

	energy, satisfaction, mood := scoreOrDefault(req.EnergyLevel), scoreOrDefault(req.Satisfaction), scoreOrDefault(req.Mood)
	for _, score := range []int{energy, satisfaction, mood} {
		if score < 1 || score > 10 {
			return nil, utils.ErrInvalidScore
		}
	}

	return &db_models.CheckIn{
		Status:           status,
		Challenges:       challenges,
		Motivations:      motivations,
		SabotagePatterns: sabotage,
		TimeOfDay:        timeOfDay,
		EnergyLevel:      energy,
		Satisfaction:     satisfaction,
		Mood:             mood,
		Reflection:       strings.TrimSpace(req.Reflection),
	}, nil
}

// scoreOrDefault maps an omitted score to the form's midpoint.
func scoreOrDefault(score int) int {
	if score == 0 {
		return defaultEnergyScore
	}
	return score
}

// validateTags rejects tags outside allowed and drops duplicates.
func validateTags(tags []string, allowed db_models.TagSet) (pq.StringArray, error) {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if !allowed.Contains(tag) {
			return nil, utils.ErrInvalidTag
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}

func (s *CheckInService) ListCheckIns(ctx context.Context, userID, habitID uuid.UUID) ([]db_models.CheckIn, error) {
	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}
	checkIns, err := s.checkInRepo.ListByHabit(ctx, habitID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return checkIns, nil
}

func (s *CheckInService) TodayCheckIn(ctx context.Context, userID, habitID uuid.UUID) (*response_models.TodayCheckIn, error) {
	if _, err := s.ownedHabit(ctx, userID, habitID); err != nil {
		return nil, err
	}
	today, err := userToday(ctx, s.accountRepo, userID, s.clock)
	if err != nil {
		return nil, err
	}

	date := utils.FormatDate(today)
	checkIn, err := s.checkInRepo.FindByHabitAndDate(ctx, habitID, date)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.TodayCheckIn{
		Date:    date,
		Done:    checkIn != nil,
		CheckIn: checkIn,
	}, nil
}

func (s *CheckInService) Stats(ctx context.Context, userID, habitID uuid.UUID) (*response_models.HabitStats, error) {
	checkIns, err := s.ListCheckIns(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	today, err := userToday(ctx, s.accountRepo, userID, s.clock)
	if err != nil {
		return nil, err
	}
	stats := BuildHabitStats(checkIns, today)
	return &stats, nil
}

// Calendar reconciles one month; an empty month means the user's current one.
func (s *CheckInService) Calendar(ctx context.Context, userID, habitID uuid.UUID, month string) ([]response_models.CalendarDay, error) {
	checkIns, err := s.ListCheckIns(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	today, err := userToday(ctx, s.accountRepo, userID, s.clock)
	if err != nil {
		return nil, err
	}

	year, m := today.Year(), today.Month()
	if month != "" {
		if year, m, err = utils.ParseMonth(month); err != nil {
			return nil, err
		}
	}
	return ReconcileMonth(year, m, checkIns, today), nil
}

func (s *CheckInService) Report(ctx context.Context, userID, habitID uuid.UUID) (*response_models.Report, error) {
	checkIns, err := s.ListCheckIns(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	report := BuildReport(checkIns)
	return &report, nil
}

func (s *CheckInService) Insight(ctx context.Context, userID, habitID uuid.UUID) (*response_models.Insight, error) {
	habit, err := s.ownedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	recent, err := s.checkInRepo.ListRecentByHabit(ctx, habitID, insightWindow)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	generated := s.promptService.Insight(ctx, habit.Name, recent)
	return &response_models.Insight{
		HabitID:  habitID.String(),
		Content:  generated.Content,
		Fallback: generated.Fallback,
	}, nil
}
