package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Environment string   `mapstructure:"APP_ENV"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`
	AutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	JWTTTL      time.Duration `mapstructure:"JWT_TTL"`
	AdminEmails []string      `mapstructure:"ADMIN_EMAILS"`

	AIProvider   string `mapstructure:"AI_PROVIDER"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`

	ReminderConfig `mapstructure:",squash"`
}

type ReminderConfig struct {
	Channel     string `mapstructure:"REMINDER_CHANNEL"`
	CronSecret  string `mapstructure:"REMINDER_CRON_SECRET"`
	CronSpec    string `mapstructure:"REMINDER_CRON_SPEC"`
	Timezone    string `mapstructure:"REMINDER_TIMEZONE"`
	MatchTime   bool   `mapstructure:"REMINDER_MATCH_TIME"`
	Concurrency int    `mapstructure:"REMINDER_CONCURRENCY"`

	WebhookURL     string        `mapstructure:"REMINDER_WEBHOOK_URL"`
	WebhookTimeout time.Duration `mapstructure:"REMINDER_WEBHOOK_TIMEOUT"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	SMTPFromName string `mapstructure:"SMTP_FROM_NAME"`
	AppBaseURL   string `mapstructure:"APP_BASE_URL"`

	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC"`
}

var envKeys = []string{
	"PORT", "APP_ENV", "CORS_ORIGINS",
	"POSTGRES_URL", "DB_AUTO_MIGRATE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "JWT_TTL", "ADMIN_EMAILS",
	"AI_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL",
	"LOG_LEVEL", "LOG_FILE", "LOG_JSON",
	"REMINDER_CHANNEL", "REMINDER_CRON_SECRET", "REMINDER_CRON_SPEC", "REMINDER_TIMEZONE",
	"REMINDER_MATCH_TIME", "REMINDER_CONCURRENCY",
	"REMINDER_WEBHOOK_URL", "REMINDER_WEBHOOK_TIMEOUT",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM", "SMTP_FROM_NAME", "APP_BASE_URL",
	"KAFKA_BROKERS", "KAFKA_TOPIC",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_TTL", time.Hour)
	v.SetDefault("AI_PROVIDER", "gemini")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REMINDER_CHANNEL", "webhook")
	v.SetDefault("REMINDER_TIMEZONE", "UTC")
	v.SetDefault("REMINDER_CONCURRENCY", 4)
	v.SetDefault("REMINDER_WEBHOOK_TIMEOUT", 10*time.Second)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Mente Viva")
	v.SetDefault("KAFKA_TOPIC", "habit-reminders")
}

// Load reads app.env from path when present and lets environment variables
// override it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)
	cfg.KafkaBrokers = splitList(cfg.KafkaBrokers)
	cfg.AdminEmails = splitList(cfg.AdminEmails)
	for i, email := range cfg.AdminEmails {
		cfg.AdminEmails[i] = strings.ToLower(email)
	}
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	cfg.Channel = strings.ToLower(strings.TrimSpace(cfg.Channel))

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return &cfg, nil
}

// splitList accepts both real lists and a single comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
