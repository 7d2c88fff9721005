package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "5175", cfg.Server.Port)
	assert.Equal(t, 12, cfg.Puzzle.Size)
	assert.Equal(t, 16, cfg.Puzzle.AttemptFactor)
	assert.Equal(t, 14, cfg.Auth.ExpiresDays)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2*time.Hour, cfg.Server.SessionIdle)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "missing port", modify: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "zero session idle", modify: func(c *Config) { c.Server.SessionIdle = 0 }, wantErr: true},
		{name: "missing db path", modify: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "zero grid size", modify: func(c *Config) { c.Puzzle.Size = 0 }, wantErr: true},
		{name: "zero attempt factor", modify: func(c *Config) { c.Puzzle.AttemptFactor = 0 }, wantErr: true},
		{name: "zero expiry", modify: func(c *Config) { c.Auth.ExpiresDays = 0 }, wantErr: true},
		{name: "dev secret in production", modify: func(c *Config) { c.Auth.Production = true }, wantErr: true},
		{
			name: "real secret in production",
			modify: func(c *Config) {
				c.Auth.Production = true
				c.Auth.JWTSecret = "s3cret"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9000"
puzzle:
  size: 15
  vocabulary_file: /tmp/words.txt
log:
  level: debug
  pretty: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Puzzle.Size)
	assert.Equal(t, "/tmp/words.txt", cfg.Puzzle.VocabularyFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	// untouched fields keep defaults
	assert.Equal(t, 16, cfg.Puzzle.AttemptFactor)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [unclosed"), 0o644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Puzzle.Size = 20
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GRID_SIZE", "10")
	t.Setenv("PLACEMENT_ATTEMPT_FACTOR", "32")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("SESSION_IDLE_TIMEOUT", "45m")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Puzzle.Size)
	assert.Equal(t, 32, cfg.Puzzle.AttemptFactor)
	assert.True(t, cfg.Auth.Production)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, 45*time.Minute, cfg.Server.SessionIdle)
}

func TestApplyEnvBadInt(t *testing.T) {
	t.Setenv("GRID_SIZE", "twelve")
	err := DefaultConfig().ApplyEnv()
	assert.ErrorContains(t, err, "GRID_SIZE")

	t.Setenv("GRID_SIZE", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "soon")
	assert.ErrorContains(t, DefaultConfig().ApplyEnv(), "SESSION_IDLE_TIMEOUT")
}
