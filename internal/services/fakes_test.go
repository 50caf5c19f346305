package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"menteviva/internal/models/db_models"
	"menteviva/internal/repositories"
	"menteviva/pkg/utils"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func mustDate(s string) time.Time {
	t, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*db_models.Account
}

func newFakeAccountRepo(accounts ...*db_models.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: map[uuid.UUID]*db_models.Account{}}
	for _, a := range accounts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		r.accounts[a.ID] = a
	}
	return r
}

func (r *fakeAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return utils.ErrEmailAlreadyExists
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id], nil
}

func (r *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return utils.ErrAccountNotFound
	}
	for k, v := range updates {
		switch k {
		case "full_name":
			a.FullName = v.(string)
		case "whatsapp":
			a.Whatsapp = v.(string)
		case "avatar":
			a.Avatar = v.(string)
		case "timezone":
			a.Timezone = v.(string)
		case "email_notifications":
			a.EmailNotifications = v.(bool)
		}
	}
	return nil
}

type fakeHabitRepo struct {
	mu      sync.Mutex
	habits  []*db_models.Habit
	listErr error
	deleted []uuid.UUID
}

var _ repositories.HabitRepository = (*fakeHabitRepo)(nil)

func (r *fakeHabitRepo) Insert(ctx context.Context, habit *db_models.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if habit.ID == uuid.Nil {
		habit.ID = uuid.New()
	}
	r.habits = append(r.habits, habit)
	return nil
}

func (r *fakeHabitRepo) find(id, accountID uuid.UUID) *db_models.Habit {
	for _, h := range r.habits {
		if h.ID == id && h.AccountID == accountID {
			return h
		}
	}
	return nil
}

func (r *fakeHabitRepo) FindByIDAndAccount(ctx context.Context, id, accountID uuid.UUID) (*db_models.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.find(id, accountID)
	if h == nil {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *fakeHabitRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Habit
	for _, h := range r.habits {
		if h.AccountID == accountID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHabitRepo) FindActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Habit, error) {
	all, _ := r.ListByAccount(ctx, accountID)
	var out []db_models.Habit
	for _, h := range all {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHabitRepo) CountActiveByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	active, _ := r.FindActiveByAccount(ctx, accountID)
	return int64(len(active)), nil
}

func (r *fakeHabitRepo) Update(ctx context.Context, id, accountID uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.find(id, accountID)
	if h == nil {
		return utils.ErrHabitNotFound
	}
	for k, v := range updates {
		switch k {
		case "is_active":
			h.IsActive = v.(bool)
		case "name":
			h.Name = v.(string)
		case "motivation":
			h.Motivation = v.(string)
		case "reminder_time":
			h.ReminderTime = v.(string)
		case "days_of_week":
			h.DaysOfWeek = v.(pq.Int64Array)
		case "duration_value":
			h.DurationValue = v.(int)
		case "duration_unit":
			h.DurationUnit = v.(db_models.DurationUnit)
		}
	}
	return nil
}

func (r *fakeHabitRepo) DeleteWithCheckIns(ctx context.Context, id, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.habits {
		if h.ID == id && h.AccountID == accountID {
			r.habits = append(r.habits[:i], r.habits[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return utils.ErrHabitNotFound
}

func (r *fakeHabitRepo) ListActiveWithOwner(ctx context.Context) ([]db_models.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []db_models.Habit
	for _, h := range r.habits {
		if h.IsActive {
			out = append(out, *h)
		}
	}
	return out, nil
}

type fakeCheckInRepo struct {
	mu       sync.Mutex
	checkIns []db_models.CheckIn
	// skipLookup hides rows from FindByHabitAndDate to simulate a lost race.
	skipLookup bool
}

func (r *fakeCheckInRepo) Insert(ctx context.Context, checkIn *db_models.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.checkIns {
		if c.HabitID == checkIn.HabitID && c.Date == checkIn.Date {
			return utils.ErrCheckInExists
		}
	}
	if checkIn.ID == uuid.Nil {
		checkIn.ID = uuid.New()
	}
	r.checkIns = append(r.checkIns, *checkIn)
	return nil
}

func (r *fakeCheckInRepo) ListByHabit(ctx context.Context, habitID uuid.UUID) ([]db_models.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.CheckIn
	for _, c := range r.checkIns {
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *fakeCheckInRepo) ListRecentByHabit(ctx context.Context, habitID uuid.UUID, limit int) ([]db_models.CheckIn, error) {
	out, _ := r.ListByHabit(ctx, habitID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCheckInRepo) FindByHabitAndDate(ctx context.Context, habitID uuid.UUID, date string) (*db_models.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipLookup {
		return nil, nil
	}
	for _, c := range r.checkIns {
		if c.HabitID == habitID && c.Date == date {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeQuoteRepo struct {
	mu         sync.Mutex
	quotes     []db_models.DailyQuote
	skipLookup int // number of upcoming lookups that pretend nothing exists
}

func (r *fakeQuoteRepo) Insert(ctx context.Context, quote *db_models.DailyQuote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotes {
		if q.AccountID == quote.AccountID && q.Date == quote.Date {
			return repositories.ErrQuoteDuplicate
		}
	}
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	r.quotes = append(r.quotes, *quote)
	return nil
}

func (r *fakeQuoteRepo) FindByAccountAndDate(ctx context.Context, accountID uuid.UUID, date string) (*db_models.DailyQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipLookup > 0 {
		r.skipLookup--
		return nil, nil
	}
	for _, q := range r.quotes {
		if q.AccountID == accountID && q.Date == date {
			cp := q
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuoteRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.DailyQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.DailyQuote
	for _, q := range r.quotes {
		if q.AccountID == accountID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeTestResultRepo struct {
	results []db_models.TestResult
}

func (r *fakeTestResultRepo) Insert(ctx context.Context, result *db_models.TestResult) error {
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeTestResultRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.TestResult, error) {
	var out []db_models.TestResult
	for _, res := range r.results {
		if res.AccountID == accountID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeTestResultRepo) FindLatestByAccountAndType(ctx context.Context, accountID uuid.UUID, testType db_models.TestType) (*db_models.TestResult, error) {
	var latest *db_models.TestResult
	for i, res := range r.results {
		if res.AccountID != accountID || res.TestType != testType {
			continue
		}
		if latest == nil || res.CompletedAt.After(latest.CompletedAt) {
			latest = &r.results[i]
		}
	}
	return latest, nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   string
	err     error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

var errDeliveryFailed = errors.New("delivery failed")
