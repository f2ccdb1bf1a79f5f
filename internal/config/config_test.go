package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(originalDir) })

	require.NoError(t, os.Chdir(tempDir))
	return tempDir
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "mysql", config.Database.Provider)
	assert.Equal(t, "DATABASE_URL", config.Database.URLEnv)
	assert.Equal(t, "db/demo", config.ExportPath)
	assert.Equal(t, "DemoData", config.Seed.CreatedBy)
	assert.True(t, config.Seed.Transaction)
	assert.Equal(t, 120, config.Check.StatementTimeout)
	assert.Equal(t, 10, config.Check.ProgressEvery)
	require.NoError(t, config.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)
	viper.Reset()
	t.Cleanup(viper.Reset)

	content := `{
  "database": {"provider": "sqlite", "url_env": "DEMO_DB"},
  "seed": {"transaction": false},
  "check": {"statement_timeout": 30}
}`
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Provider)
	assert.Equal(t, "DEMO_DB", cfg.Database.URLEnv)
	assert.False(t, cfg.Seed.Transaction)
	assert.Equal(t, 30, cfg.Check.StatementTimeout)
	assert.Equal(t, 10, cfg.Check.ProgressEvery)
	assert.Equal(t, "DemoData", cfg.Seed.CreatedBy)
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Provider = "oracle"
	assert.ErrorContains(t, cfg.Validate(), "unsupported database provider")

	cfg = DefaultConfig()
	cfg.Check.StatementTimeout = -1
	assert.Error(t, cfg.Validate())
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "DEMOSEED_TEST_URL"

	t.Setenv("DEMOSEED_TEST_URL", "")
	_, err := cfg.GetDatabaseURL()
	assert.ErrorContains(t, err, "DEMOSEED_TEST_URL")

	t.Setenv("DEMOSEED_TEST_URL", "sqlite://demo.db")
	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://demo.db", url)
}

func TestInitializeProject(t *testing.T) {
	dir := chdirTemp(t)

	assert.False(t, IsInitialized())
	require.NoError(t, InitializeProject(false))
	assert.True(t, IsInitialized())
	assert.FileExists(t, filepath.Join(dir, FileName))

	assert.Error(t, InitializeProject(false), "second initialization should fail")
	assert.NoError(t, InitializeProject(true))
}
