package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Success(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"database_url": "postgres://localhost/career",
		"port": 9090,
		"use_browser": true,
		"default_template": "executive",
		"generation_timeout": "90s"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/career", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "executive", cfg.DefaultTemplate)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid timeout", Config{GenerationTimeout: "45s"}, false},
		{"zero timeout disables bound", Config{GenerationTimeout: "0"}, false},
		{"bad timeout", Config{GenerationTimeout: "soon"}, true},
		{"negative timeout", Config{GenerationTimeout: "-5s"}, true},
		{"port out of range", Config{Port: 70000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-file"}
	defaults := Config{
		APIKey:          "from-env",
		DatabaseURL:     "postgres://localhost/career",
		Port:            DefaultPort,
		DefaultTemplate: DefaultTemplate,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "from-file", merged.APIKey, "explicit value wins")
	assert.Equal(t, "postgres://localhost/career", merged.DatabaseURL)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultTemplate, merged.DefaultTemplate)
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, DefaultGenerationTimeout, Config{}.Timeout())
	assert.Equal(t, 90*time.Second, Config{GenerationTimeout: "90s"}.Timeout())
	assert.Equal(t, time.Duration(0), Config{GenerationTimeout: "0"}.Timeout())
}

func TestFromEnv_MergesDirectly(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GENERATION_TIMEOUT", "")

	// Merging straight off the FromEnv return value is how loadConfig
	// composes env over defaults.
	merged := FromEnv().MergeWithDefaults(Config{
		Port:            DefaultPort,
		DefaultTemplate: DefaultTemplate,
	})
	assert.Equal(t, "env-key", merged.APIKey)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultTemplate, merged.DefaultTemplate)
	assert.Equal(t, DefaultGenerationTimeout, merged.Timeout())
}
