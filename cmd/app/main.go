package main

import (
	"context"
	"errors"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"menteviva/cmd/fx/account_fx"
	"menteviva/cmd/fx/checkin_fx"
	"menteviva/cmd/fx/config_fx"
	"menteviva/cmd/fx/controllers_fx"
	"menteviva/cmd/fx/db_fx"
	"menteviva/cmd/fx/habit_fx"
	"menteviva/cmd/fx/mail_fx"
	"menteviva/cmd/fx/memcache_fx"
	"menteviva/cmd/fx/prompt_fx"
	"menteviva/cmd/fx/quote_fx"
	"menteviva/cmd/fx/reminder_fx"
	"menteviva/cmd/fx/test_result_fx"
	"menteviva/internal/api/controllers"
	"menteviva/internal/config"
	"menteviva/internal/models/db_models"
	"menteviva/pkg/middleware"
	"menteviva/pkg/utils"
)

const (
	loginRateLimit  = 10
	revealRateLimit = 5
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		prompt_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		habit_fx.Module,
		checkin_fx.Module,
		quote_fx.Module,
		test_result_fx.Module,
		reminder_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *log.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting HTTP server", "addr", server.Addr, "env", cfg.Environment)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config      *config.Config
	Logger      *log.Logger
	Tokens      *utils.TokenManager
	RateLimiter *middleware.RateLimiter

	Accounts    *controllers.AccountController
	Habits      *controllers.HabitController
	CheckIns    *controllers.CheckInController
	Quotes      *controllers.QuoteController
	TestResults *controllers.TestResultController
	Reminders   *controllers.ReminderController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(cors.New(corsConfig(p.Config.CORSOrigins)))

	RegisterRoutes(r, p)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.TraceIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.TraceIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/healthz", controllers.Health)

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", p.Accounts.Register)
	accountGroup.POST("/login", p.RateLimiter.Limit("login", loginRateLimit, time.Minute), p.Accounts.Login)

	auth := r.Group("/", middleware.JWTAuthMiddleware(p.Tokens))

	auth.GET("/accounts/me", p.Accounts.GetProfile)
	auth.PUT("/accounts/me", p.Accounts.UpdateProfile)

	habitGroup := auth.Group("/habits")
	habitGroup.GET("", p.Habits.ListHabits)
	habitGroup.POST("", p.Habits.CreateHabit)
	habitGroup.GET("/active", p.Habits.GetActiveHabits)
	habitGroup.GET("/limit", p.Habits.GetLimit)
	habitGroup.GET("/:id", p.Habits.GetHabit)
	habitGroup.PATCH("/:id", p.Habits.UpdateHabit)
	habitGroup.DELETE("/:id", p.Habits.DeleteHabit)
	habitGroup.POST("/:id/activate", p.Habits.ActivateHabit)
	habitGroup.POST("/:id/deactivate", p.Habits.DeactivateHabit)

	habitGroup.POST("/:id/checkins", p.CheckIns.Submit)
	habitGroup.GET("/:id/checkins", p.CheckIns.List)
	habitGroup.GET("/:id/checkins/today", p.CheckIns.Today)
	habitGroup.GET("/:id/stats", p.CheckIns.Stats)
	habitGroup.GET("/:id/calendar", p.CheckIns.Calendar)
	habitGroup.GET("/:id/report", p.CheckIns.Report)
	habitGroup.GET("/:id/insight", p.RateLimiter.Limit("insight", revealRateLimit, time.Minute), p.CheckIns.Insight)

	quoteGroup := auth.Group("/quotes")
	quoteGroup.GET("", p.Quotes.List)
	quoteGroup.GET("/today", p.Quotes.Today)
	quoteGroup.POST("/today/reveal", p.RateLimiter.Limit("reveal", revealRateLimit, time.Minute), p.Quotes.Reveal)

	testGroup := auth.Group("/tests")
	testGroup.POST("/results", p.TestResults.Save)
	testGroup.GET("/results", p.TestResults.List)
	testGroup.GET("/results/latest/:type", p.TestResults.Latest)

	admin := auth.Group("/admin", middleware.RoleMiddleware(db_models.RoleAdmin))
	admin.POST("/reminders/dispatch", p.Reminders.Dispatch)

	internal := r.Group("/internal", middleware.CronSecretMiddleware(p.Config.CronSecret))
	internal.POST("/reminders/dispatch", p.Reminders.Dispatch)
}
