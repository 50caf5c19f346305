package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"menteviva/pkg/logger"
	mem "menteviva/pkg/memcache"
	"menteviva/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	limiter := NewRateLimiter(mem.NewWindowCounter(), logger.Discard())
	r := gin.New()
	r.POST("/login", limiter.Limit("login", 2, time.Minute), ok)

	for i := 0; i < 2; i++ {
		if w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}

	w := serve(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "198.51.100.7:4321"
	if w := serve(r, other); w.Code != http.StatusOK {
		t.Errorf("another client should not be limited, got %d", w.Code)
	}
}

func TestRateLimiterKeysByUser(t *testing.T) {
	limiter := NewRateLimiter(mem.NewWindowCounter(), logger.Discard())
	r := gin.New()
	r.POST("/reveal", func(c *gin.Context) {
		c.Set(ContextUserID, c.GetHeader("X-User"))
		c.Next()
	}, limiter.Limit("reveal", 1, time.Minute), ok)

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/reveal", nil)
		req.Header.Set("X-User", user)
		return serve(r, req).Code
	}

	if code := send("alice"); code != http.StatusOK {
		t.Fatalf("alice first: %d", code)
	}
	if code := send("alice"); code != http.StatusTooManyRequests {
		t.Errorf("alice second: %d", code)
	}
	// same IP, different user
	if code := send("bob"); code != http.StatusOK {
		t.Errorf("bob first: %d", code)
	}
}

type failingStore struct{}

func (failingStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("redis down")
}

func TestRateLimiterFailsOpen(t *testing.T) {
	limiter := NewRateLimiter(failingStore{}, logger.Discard())
	r := gin.New()
	r.GET("/x", limiter.Limit("x", 1, time.Minute), ok)

	for i := 0; i < 3; i++ {
		if w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(tokens), func(c *gin.Context) {
		id, found := UserID(c)
		if !found {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})

	token, err := tokens.CreateToken(userID, "user")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != userID.String() {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}

	other := utils.NewTokenManager("other-secret", time.Hour)
	forged, _ := other.CreateToken(userID, "user")
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	if w := serve(r, req); w.Code != http.StatusUnauthorized {
		t.Errorf("token signed with another secret: status %d", w.Code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ContextRole, c.GetHeader("X-Role"))
		c.Next()
	}, RoleMiddleware("admin"), ok)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Role", "user")
	if w := serve(r, req); w.Code != http.StatusForbidden {
		t.Errorf("user role: status %d", w.Code)
	}
	req.Header.Set("X-Role", "admin")
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Errorf("admin role: status %d", w.Code)
	}
}

func TestCronSecretMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"not configured", "", "anything", http.StatusServiceUnavailable},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"wrong secret", "s3cret", "guess", http.StatusUnauthorized},
		{"valid", "s3cret", "s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/internal/reminders", CronSecretMiddleware(tt.secret), ok)

			req := httptest.NewRequest(http.MethodPost, "/internal/reminders", nil)
			if tt.header != "" {
				req.Header.Set(CronSecretHeader, tt.header)
			}
			if w := serve(r, req); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestTraceIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TraceIDMiddleware(), RequestLogger(logger.Discard()))
	r.GET("/t", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/t", nil))
	generated := w.Header().Get(TraceIDHeader)
	if _, err := uuid.Parse(generated); err != nil || w.Body.String() != generated {
		t.Errorf("expected a generated uuid trace id, got header %q body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(TraceIDHeader, "abc-123")
	if w := serve(r, req); w.Header().Get(TraceIDHeader) != "abc-123" {
		t.Errorf("incoming trace id should be reused, got %q", w.Header().Get(TraceIDHeader))
	}
}

// fakeRedisCmds keeps one counter and its ttl; -1 means no expiry, as TTL
// reports it.
type fakeRedisCmds struct {
	count     int64
	ttl       time.Duration
	expires   int
	expireErr error
}

func (f *fakeRedisCmds) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.count++
	return redis.NewIntResult(f.count, nil)
}

func (f *fakeRedisCmds) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires++
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.ttl = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedisCmds) TTL(ctx context.Context, key string) *redis.DurationCmd {
	return redis.NewDurationResult(f.ttl, nil)
}

func TestRedisCounterSetsWindowOnFirstHit(t *testing.T) {
	cmds := &fakeRedisCmds{ttl: -1}
	counter := &RedisCounter{client: cmds}
	ctx := context.Background()

	count, ttl, err := counter.Incr(ctx, "rate_limit:login:ip", time.Minute)
	if err != nil || count != 1 || ttl != time.Minute {
		t.Fatalf("first hit = %d, %v, %v", count, ttl, err)
	}

	cmds.ttl = 40 * time.Second
	count, ttl, err = counter.Incr(ctx, "rate_limit:login:ip", time.Minute)
	if err != nil || count != 2 || ttl != 40*time.Second {
		t.Errorf("second hit = %d, %v, %v", count, ttl, err)
	}
	if cmds.expires != 1 {
		t.Errorf("expire calls = %d, want 1", cmds.expires)
	}
}

func TestRedisCounterRestoresLostExpiry(t *testing.T) {
	cmds := &fakeRedisCmds{ttl: -1, expireErr: errors.New("connection reset")}
	counter := &RedisCounter{client: cmds}
	ctx := context.Background()

	if _, _, err := counter.Incr(ctx, "rate_limit:reveal:u1", time.Minute); err == nil {
		t.Fatal("expected the failed expire to be reported")
	}
	if cmds.ttl != -1 {
		t.Fatalf("ttl = %v, the key should be left without expiry", cmds.ttl)
	}

	cmds.expireErr = nil
	count, ttl, err := counter.Incr(ctx, "rate_limit:reveal:u1", time.Minute)
	if err != nil || count != 2 || ttl != time.Minute {
		t.Fatalf("second hit = %d, %v, %v", count, ttl, err)
	}
	if cmds.ttl != time.Minute || cmds.expires != 2 {
		t.Errorf("expiry not restored: ttl %v after %d expire calls", cmds.ttl, cmds.expires)
	}
}
