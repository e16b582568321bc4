package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"` // current application environment (local, dev, prod etc)
	TelegramAPIToken string   `mapstructure:"-"`   // Telegram API token loaded from environment
	AnthropicAPIKey  string   `mapstructure:"-"`   // LLM API key loaded from environment
	DB               DB       `mapstructure:"database"`
	Learning         Learning `mapstructure:"learning"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Learning contains the tunable thresholds of the learning state machine.
// Distribution thresholds are mastery percentages; promotion thresholds are
// correct-answer counts.
type Learning struct {
	PreviewThreshold     int `mapstructure:"preview_threshold"`      // mastery % at which next-level words start appearing
	GradualThreshold     int `mapstructure:"gradual_threshold"`      // mastery % for the 70/30 split
	BalancedThreshold    int `mapstructure:"balanced_threshold"`     // mastery % for the 50/50 split
	AdvancedThreshold    int `mapstructure:"advanced_threshold"`     // mastery % for the 30/70 split
	AutoAdvanceThreshold int `mapstructure:"auto_advance_threshold"` // mastery % triggering level advancement
	LearningToReviewing  int `mapstructure:"learning_to_reviewing"`  // correct answers promoting learning -> reviewing
	ReviewingToMastered  int `mapstructure:"reviewing_to_mastered"`  // correct answers promoting reviewing -> mastered
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("learning.preview_threshold", 50)
	v.SetDefault("learning.gradual_threshold", 65)
	v.SetDefault("learning.balanced_threshold", 80)
	v.SetDefault("learning.advanced_threshold", 90)
	v.SetDefault("learning.auto_advance_threshold", 95)
	v.SetDefault("learning.learning_to_reviewing", 3)
	v.SetDefault("learning.reviewing_to_mastered", 8)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// The LLM key is optional: without it the bot falls back to the
	// built-in placement questions.
	cfg.AnthropicAPIKey = v.GetString("anthropic_api_key")

	return &cfg, nil
}
