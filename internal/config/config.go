package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variable names.
const (
	keyEnv             = "APP_ENV"
	keyPort            = "PORT"
	keyAppURL          = "APP_URL"
	keyDatabaseURL     = "DATABASE_URL"
	keyRedisURL        = "REDIS_URL"
	keyFirebaseCreds   = "FIREBASE_CREDENTIALS_PATH"
	keyFirebaseAPIKey  = "FIREBASE_API_KEY"
	keyFirebaseDomain  = "FIREBASE_AUTH_DOMAIN"
	keyFirebaseProject = "FIREBASE_PROJECT_ID"
	keyDefaultLocale   = "DEFAULT_LOCALE"
	keyTitleCacheTTL   = "TITLE_CACHE_TTL"
	keyWorkerInterval  = "WORKER_INTERVAL"
	keySMTPHost        = "SMTP_HOST"
	keySMTPPort        = "SMTP_PORT"
	keySMTPUser        = "SMTP_USER"
	keySMTPPass        = "SMTP_PASS"
	keyEmailFrom       = "EMAIL_FROM"
)

// SMTPConfig holds outgoing mail settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// Configured reports whether every credential needed to send mail is set.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != "" && c.User != "" && c.Password != ""
}

// FirebaseWebConfig is exposed to the login page.
type FirebaseWebConfig struct {
	APIKey     string
	AuthDomain string
	ProjectID  string
}

// Config is the process configuration, read from the environment.
type Config struct {
	Env                     string
	Port                    string
	AppURL                  string
	DatabaseURL             string
	RedisURL                string
	FirebaseCredentialsPath string
	Firebase                FirebaseWebConfig
	DefaultLocale           string
	TitleCacheTTL           time.Duration
	WorkerInterval          time.Duration
	SMTP                    SMTPConfig
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(keyEnv, "development")
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyAppURL, "http://localhost:8080")
	v.SetDefault(keyFirebaseCreds, "./firebase-service-account.json")
	v.SetDefault(keyDefaultLocale, "en")
	v.SetDefault(keyTitleCacheTTL, "10m")
	v.SetDefault(keyWorkerInterval, "5m")

	cfg := &Config{
		Env:                     v.GetString(keyEnv),
		Port:                    v.GetString(keyPort),
		AppURL:                  strings.TrimRight(v.GetString(keyAppURL), "/"),
		DatabaseURL:             v.GetString(keyDatabaseURL),
		RedisURL:                v.GetString(keyRedisURL),
		FirebaseCredentialsPath: v.GetString(keyFirebaseCreds),
		Firebase: FirebaseWebConfig{
			APIKey:     v.GetString(keyFirebaseAPIKey),
			AuthDomain: v.GetString(keyFirebaseDomain),
			ProjectID:  v.GetString(keyFirebaseProject),
		},
		DefaultLocale:  v.GetString(keyDefaultLocale),
		TitleCacheTTL:  v.GetDuration(keyTitleCacheTTL),
		WorkerInterval: v.GetDuration(keyWorkerInterval),
		SMTP: SMTPConfig{
			Host:     v.GetString(keySMTPHost),
			Port:     v.GetString(keySMTPPort),
			User:     v.GetString(keySMTPUser),
			Password: v.GetString(keySMTPPass),
			From:     v.GetString(keyEmailFrom),
		},
	}

	if cfg.TitleCacheTTL <= 0 {
		return nil, fmt.Errorf("invalid %s: %q", keyTitleCacheTTL, v.GetString(keyTitleCacheTTL))
	}
	if cfg.WorkerInterval <= 0 {
		return nil, fmt.Errorf("invalid %s: %q", keyWorkerInterval, v.GetString(keyWorkerInterval))
	}

	return cfg, nil
}
