package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the loaded configuration
type Config struct {
	APIBaseURL        string        `yaml:"api_url" validate:"required,url"`
	RequestTimeout    time.Duration `yaml:"request_timeout" validate:"gt=0"`
	TokenStorePath    string        `yaml:"token_store_path" validate:"required"`
	RedisURL          string        `yaml:"redis_url"`
	SessionTTL        time.Duration `yaml:"session_ttl" validate:"gte=0"`
	StorefrontAddr    string        `yaml:"storefront_addr" validate:"required"`
	CORSOrigins       []string      `yaml:"cors_origins"`
	Locations         []string      `yaml:"locations"`
	Env               string        `yaml:"env" validate:"oneof=development production"`
	LogFile           string        `yaml:"log_file"`
	CloudWatchEnabled bool          `yaml:"cloudwatch_enabled"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		APIBaseURL:     "http://localhost:8000",
		RequestTimeout: 10 * time.Second,
		TokenStorePath: defaultTokenStorePath(),
		SessionTTL:     24 * time.Hour,
		StorefrontAddr: ":3000",
		CORSOrigins:    []string{"http://localhost:3000"},
		Locations:      []string{"Hanoi", "Ho Chi Minh City", "Da Nang"},
		Env:            "development",
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment (including a .env file), in that order of precedence. An empty
// path falls back to MARKETPLACE_CONFIG.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("MARKETPLACE_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for obviously unusable values
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.APIBaseURL = strings.TrimRight(getEnv("MARKETPLACE_API_URL", cfg.APIBaseURL), "/")
	cfg.TokenStorePath = getEnv("TOKEN_STORE_PATH", cfg.TokenStorePath)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.StorefrontAddr = getEnv("STOREFRONT_ADDR", cfg.StorefrontAddr)
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("LOCATIONS"); v != "" {
		cfg.Locations = splitList(v)
	}
	if v := os.Getenv("CLOUDWATCH_ENABLED"); v != "" {
		cfg.CloudWatchEnabled = v == "true"
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return err
	}
	return nil
}

// Helper to get an environment variable or return a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func defaultTokenStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".marketplace-storage.json"
	}
	return filepath.Join(dir, "marketplace", "storage.json")
}
