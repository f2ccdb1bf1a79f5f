package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const FileName = "demoseed.config.json"

type Config struct {
	Version    string   `json:"version" mapstructure:"version"`
	ExportPath string   `json:"export_path" mapstructure:"export_path"`
	Database   Database `json:"database" mapstructure:"database"`
	Seed       Seed     `json:"seed" mapstructure:"seed"`
	Check      Check    `json:"check" mapstructure:"check"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type Seed struct {
	CreatedBy   string `json:"created_by" mapstructure:"created_by"`
	Transaction bool   `json:"transaction" mapstructure:"transaction"`
}

type Check struct {
	StatementTimeout int `json:"statement_timeout" mapstructure:"statement_timeout"` // seconds
	ProgressEvery    int `json:"progress_every" mapstructure:"progress_every"`
}

var supportedProviders = []string{"mysql", "postgresql", "postgres", "sqlite", "sqlite3"}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults(false)
	return cfg
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults(viper.IsSet("seed.transaction"))
	return &cfg, nil
}

func (c *Config) applyDefaults(transactionSet bool) {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.ExportPath == "" {
		c.ExportPath = "db/demo"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "mysql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.Seed.CreatedBy == "" {
		c.Seed.CreatedBy = "DemoData"
	}
	if !transactionSet {
		c.Seed.Transaction = true
	}
	if c.Check.StatementTimeout == 0 {
		c.Check.StatementTimeout = 120
	}
	if c.Check.ProgressEvery == 0 {
		c.Check.ProgressEvery = 10
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.Database.URLEnv == "" {
		return fmt.Errorf("database.url_env cannot be empty")
	}
	if c.Check.StatementTimeout < 0 {
		return fmt.Errorf("check.statement_timeout must be positive, got %d", c.Check.StatementTimeout)
	}
	if c.Check.ProgressEvery < 0 {
		return fmt.Errorf("check.progress_every must be positive, got %d", c.Check.ProgressEvery)
	}
	if c.Seed.CreatedBy == "" {
		return fmt.Errorf("seed.created_by cannot be empty")
	}

	return nil
}

func (c *Config) StatementTimeout() time.Duration {
	return time.Duration(c.Check.StatementTimeout) * time.Second
}

// IsInitialized reports whether a config file exists in the working directory.
func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}

// InitializeProject writes the default config to the working directory.
func InitializeProject(force bool) error {
	if IsInitialized() && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", FileName)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(FileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}

	return nil
}
