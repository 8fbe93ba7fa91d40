package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJobSpec_Valid(t *testing.T) {
	path := writeFile(t, "job.json", `{
		"job_title": "Staff Engineer",
		"company_name": "Globex",
		"job_description": "Build distributed systems."
	}`)

	job, err := loadJobSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", job.JobTitle)
	assert.Equal(t, "Globex", job.CompanyName)
}

func TestLoadJobSpec_MissingFile(t *testing.T) {
	_, err := loadJobSpec(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read job spec")
}

func TestLoadJobSpec_InvalidJSON(t *testing.T) {
	path := writeFile(t, "job.json", "{bad json")
	_, err := loadJobSpec(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse job spec JSON")
}

func TestLoadJobSpec_MissingFields(t *testing.T) {
	path := writeFile(t, "job.json", `{"job_title": "Engineer"}`)
	_, err := loadJobSpec(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must include")
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"default_template": "executive", "port": 9999}`)
	configPath = path
	t.Cleanup(func() { configPath = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "executive", cfg.DefaultTemplate)
	assert.Equal(t, 9999, cfg.Port)
}

func TestLoadConfig_Defaults(t *testing.T) {
	configPath = ""

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "classic", cfg.DefaultTemplate)
	assert.Equal(t, 8080, cfg.Port)
}
