package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menteviva/internal/models/db_models"
	"menteviva/internal/models/request_models"
	"menteviva/internal/models/response_models"
	"menteviva/internal/services"
	"menteviva/pkg/middleware"
	"menteviva/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for JWTAuthMiddleware.
func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id.String())
		c.Next()
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var body utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
	return body
}

type stubQuoteService struct {
	revealed bool
}

func (s *stubQuoteService) TodayQuote(ctx context.Context, userID uuid.UUID) (*response_models.TodayQuote, error) {
	return &response_models.TodayQuote{Date: "2025-03-10", State: response_models.QuoteLocked}, nil
}

func (s *stubQuoteService) Reveal(ctx context.Context, userID uuid.UUID) (*response_models.RevealResult, error) {
	quote := &db_models.DailyQuote{AccountID: userID, Date: "2025-03-10", Content: "frase"}
	already := s.revealed
	s.revealed = true
	return &response_models.RevealResult{Quote: quote, AlreadyRevealed: already}, nil
}

func (s *stubQuoteService) ListQuotes(ctx context.Context, userID uuid.UUID) ([]db_models.DailyQuote, error) {
	return nil, nil
}

func TestQuoteRevealStatusCodes(t *testing.T) {
	ctrl := NewQuoteController(&stubQuoteService{})
	r := gin.New()
	r.POST("/quotes/today/reveal", asUser(uuid.New()), ctrl.Reveal)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/quotes/today/reveal", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("first reveal: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/quotes/today/reveal", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("second reveal: status %d", w.Code)
	}
	if body := decode(t, w); body.Message != "Quote already revealed today" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestQuoteRequiresUser(t *testing.T) {
	ctrl := NewQuoteController(&stubQuoteService{})
	r := gin.New()
	r.GET("/quotes/today", ctrl.Today)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes/today", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// stubHabitService implements only what the tests call; the embedded
// interface panics on anything else.
type stubHabitService struct {
	services.HabitServiceInterface
	created int
}

func (s *stubHabitService) CreateHabit(ctx context.Context, userID uuid.UUID, req request_models.CreateHabitRequest) (*db_models.Habit, error) {
	if s.created >= db_models.MaxActiveHabits {
		return nil, utils.ErrHabitLimitReached
	}
	s.created++
	return &db_models.Habit{AccountID: userID, Name: req.Name, IsActive: true}, nil
}

func (s *stubHabitService) GetHabit(ctx context.Context, userID, habitID uuid.UUID) (*db_models.Habit, error) {
	return nil, utils.ErrHabitNotFound
}

func TestCreateHabitResponses(t *testing.T) {
	ctrl := NewHabitController(&stubHabitService{})
	r := gin.New()
	r.POST("/habits", asUser(uuid.New()), ctrl.CreateHabit)

	payload := `{"name":"ler","motivation":"aprender","days_of_week":[1,3],"duration_value":30,"duration_unit":"days","reminder_time":"07:00"}`
	for i := 0; i < db_models.MaxActiveHabits; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/habits", strings.NewReader(payload)))
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d: status %d %s", i, w.Code, w.Body.String())
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/habits", strings.NewReader(payload)))
	if w.Code != http.StatusConflict {
		t.Errorf("over the cap: status %d, want 409", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/habits", strings.NewReader(`{"name":`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed json: status %d, want 400", w.Code)
	}
}

func TestGetHabitPathValidation(t *testing.T) {
	ctrl := NewHabitController(&stubHabitService{})
	r := gin.New()
	r.GET("/habits/:id", asUser(uuid.New()), ctrl.GetHabit)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/habits/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/habits/"+uuid.NewString(), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown habit: status %d, want 404", w.Code)
	}
}

type stubReminderService struct {
	at  time.Time
	err error
}

func (s *stubReminderService) Dispatch(ctx context.Context, now time.Time) (*response_models.DispatchReport, error) {
	s.at = now
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.DispatchReport{Success: true, Sent: 2}, nil
}

func TestReminderDispatch(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	stub := &stubReminderService{}
	ctrl := NewReminderController(stub, func() time.Time { return now })

	r := gin.New()
	r.POST("/internal/reminders/dispatch", middleware.CronSecretMiddleware("s3cret"), ctrl.Dispatch)

	req := httptest.NewRequest(http.MethodPost, "/internal/reminders/dispatch", nil)
	req.Header.Set(middleware.CronSecretHeader, "s3cret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !stub.at.Equal(now) {
		t.Errorf("dispatch ran at %v, want %v", stub.at, now)
	}

	stub.err = utils.ErrDatabaseError
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("failed run: status %d, want 500", w.Code)
	}
}
