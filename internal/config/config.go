// Package config loads runtime configuration from the environment once at
// startup; the resulting Config is immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the server and its collaborators.
type Config struct {
	ListenAddr  string
	DatabaseDSN string

	JWTKey    string
	AccessTTL time.Duration

	FreeTierCeiling int

	GenAIAPIURL     string
	GenAIAPIKey     string
	ProviderTimeout time.Duration

	StripeAPIURL    string
	StripeSecretKey string

	LoginFailWindow time.Duration
	LoginMaxFails   int
	LoginBlockFor   time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults.
// A .env file in the working directory is honored when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		ListenAddr:      envStr("LISTEN_ADDR", ":8080"),
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		JWTKey:          os.Getenv("JWT_KEY"),
		GenAIAPIURL:     envStr("GENAI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"),
		GenAIAPIKey:     os.Getenv("GENAI_API_KEY"),
		StripeAPIURL:    envStr("STRIPE_API_URL", "https://api.stripe.com"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
	}

	var err error
	if cfg.AccessTTL, err = envDuration("ACCESS_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.FreeTierCeiling, err = envInt("FREE_TIER_CEILING", 5); err != nil {
		return Config{}, err
	}
	if cfg.ProviderTimeout, err = envDuration("PROVIDER_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LoginFailWindow, err = envDuration("LOGIN_FAIL_WINDOW", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.LoginMaxFails, err = envInt("LOGIN_MAX_FAILS", 5); err != nil {
		return Config{}, err
	}
	if cfg.LoginBlockFor, err = envDuration("LOGIN_BLOCK_FOR", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseDSN == "" {
		return Config{}, errors.New("DATABASE_DSN is required")
	}
	if cfg.JWTKey == "" {
		return Config{}, errors.New("JWT_KEY is required")
	}
	if cfg.FreeTierCeiling <= 0 {
		return Config{}, errors.New("FREE_TIER_CEILING must be positive")
	}

	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
