// Package config provides configuration loading for the word-search server.
//
// Precedence (lowest to highest):
//  1. DefaultConfig
//  2. YAML file passed with --config
//  3. .env file in the working directory (via godotenv)
//  4. Process environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Puzzle   PuzzleConfig   `yaml:"puzzle"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Port to listen on (default 5175)
	Port string `yaml:"port"`
	// ClientOrigin is the single CORS origin allowed with credentials
	ClientOrigin string `yaml:"client_origin"`
	// RequestTimeout bounds handler time
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// SessionIdle evicts in-memory games untouched for this long
	SessionIdle time.Duration `yaml:"session_idle"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// DatabaseConfig configures the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig configures JWT + cookies.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	ExpiresDays int    `yaml:"expires_days"`
	CookieName  string `yaml:"cookie_name"`
	// Production switches cookies to Secure + SameSite=None
	Production bool `yaml:"production"`
}

// PuzzleConfig configures grid generation.
type PuzzleConfig struct {
	// Size is the grid dimension N (default 12)
	Size int `yaml:"size"`
	// AttemptFactor caps placement attempts per word at AttemptFactor*N*N
	AttemptFactor int `yaml:"attempt_factor"`
	// VocabularyFile overrides the embedded vocabulary
	VocabularyFile string `yaml:"vocabulary_file"`
	// DailySalt keys the daily puzzle seed
	DailySalt string `yaml:"daily_salt"`
}

// DefaultConfig returns a Config with development defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "5175",
			ClientOrigin:   "http://localhost:5173",
			RequestTimeout: 10 * time.Second,
			SessionIdle:    2 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Path: "./data/app.db",
		},
		Auth: AuthConfig{
			JWTSecret:   "dev_secret_change_me",
			ExpiresDays: 14,
			CookieName:  "wordsearch_token",
		},
		Puzzle: PuzzleConfig{
			Size:          12,
			AttemptFactor: 16,
			DailySalt:     "local_dev_salt",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.SessionIdle <= 0 {
		return fmt.Errorf("server.session_idle must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.ExpiresDays <= 0 {
		return fmt.Errorf("auth.expires_days must be positive")
	}
	if c.Puzzle.Size <= 0 {
		return fmt.Errorf("puzzle.size must be positive")
	}
	if c.Puzzle.AttemptFactor <= 0 {
		return fmt.Errorf("puzzle.attempt_factor must be positive")
	}
	if c.Auth.Production && c.Auth.JWTSecret == DefaultConfig().Auth.JWTSecret {
		return fmt.Errorf("auth.jwt_secret must be changed in production")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load builds the effective configuration. path may be empty.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		fromFile, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv() error {
	setStr(&c.Server.Port, "PORT")
	setStr(&c.Server.ClientOrigin, "CLIENT_ORIGIN")
	setStr(&c.Log.Level, "LOG_LEVEL")
	setStr(&c.Database.Path, "DB_PATH")
	setStr(&c.Auth.JWTSecret, "JWT_SECRET")
	setStr(&c.Auth.CookieName, "COOKIE_NAME")
	setStr(&c.Puzzle.VocabularyFile, "WORDS_VOCAB_FILE")
	setStr(&c.Puzzle.DailySalt, "DAILY_SALT")
	if os.Getenv("NODE_ENV") == "production" {
		c.Auth.Production = true
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_PRETTY: %w", err)
		}
		c.Log.Pretty = b
	}
	if err := setInt(&c.Auth.ExpiresDays, "JWT_EXPIRES_DAYS"); err != nil {
		return err
	}
	if err := setInt(&c.Puzzle.Size, "GRID_SIZE"); err != nil {
		return err
	}
	if err := setInt(&c.Puzzle.AttemptFactor, "PLACEMENT_ATTEMPT_FACTOR"); err != nil {
		return err
	}
	if err := setDuration(&c.Server.RequestTimeout, "REQUEST_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&c.Server.SessionIdle, "SESSION_IDLE_TIMEOUT")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
