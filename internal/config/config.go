package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAppName       = "spree-adyen"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultIdemTTL       = 24 * time.Hour

	apiUsernameEnvVar     = "ADYEN_API_USERNAME"
	apiPasswordEnvVar     = "ADYEN_API_PASSWORD"
	merchantAccountEnvVar = "ADYEN_MERCHANT_ACCOUNT"
	notifyUsernameEnvVar  = "ADYEN_NOTIFY_USERNAME"
	notifyPasswordEnvVar  = "ADYEN_NOTIFY_PASSWORD"
	shutdownEnvVar        = "SHUTDOWN_TIMEOUT"
	idemTTLEnvVar         = "IDEMPOTENCY_TTL"
	preferencesEnvVar     = "PREFERENCES_FILE"
)

// Preferences are the merchant-level stored settings, the fallback layer
// underneath environment variables. They mirror what the upstream commerce
// platform keeps as per-gateway preferences.
type Preferences struct {
	APIUsername     string `json:"api_username"`
	APIPassword     string `json:"api_password"`
	MerchantAccount string `json:"merchant_account"`
}

// Config captures application runtime configuration, resolved once at
// startup and injected into components. Environment variables take
// precedence over stored preferences.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	APIUsername     string
	APIPassword     string
	MerchantAccount string

	NotifyUsername string
	NotifyPassword string
}

// Load resolves configuration from the environment layered over the given
// stored preferences and validates the result.
func Load(prefs Preferences) (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ShutdownPeriod: defaultShutdownDelay,
		IdempotencyTTL: defaultIdemTTL,

		APIUsername:     getEnv(apiUsernameEnvVar, prefs.APIUsername),
		APIPassword:     getEnv(apiPasswordEnvVar, prefs.APIPassword),
		MerchantAccount: getEnv(merchantAccountEnvVar, prefs.MerchantAccount),

		NotifyUsername: os.Getenv(notifyUsernameEnvVar),
		NotifyPassword: os.Getenv(notifyPasswordEnvVar),
	}

	if v := os.Getenv(shutdownEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(idemTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLEnvVar, err)
		}
		cfg.IdempotencyTTL = d
	}

	if cfg.MerchantAccount == "" {
		return Config{}, fmt.Errorf("merchant account must be set via %s or stored preference", merchantAccountEnvVar)
	}

	if cfg.NotifyUsername == "" || cfg.NotifyPassword == "" {
		return Config{}, fmt.Errorf("%s and %s must be set for webhook authentication", notifyUsernameEnvVar, notifyPasswordEnvVar)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set")
	}

	return cfg, nil
}

// LoadPreferences reads stored preferences from the JSON file named by
// PREFERENCES_FILE. Absence of the variable or the file yields empty
// preferences, leaving the environment as the only source.
func LoadPreferences() (Preferences, error) {
	path := os.Getenv(preferencesEnvVar)
	if path == "" {
		return Preferences{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("read %s: %w", path, err)
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return prefs, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
