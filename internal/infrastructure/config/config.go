package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	Planner PlannerConfig `mapstructure:"planner"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// StorageConfig holds key-value storage configuration. Backend selects
// between the file-per-key store, a single sqlite database file, and an
// ephemeral in-memory store.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// PlannerConfig holds planner behavior configuration.
type PlannerConfig struct {
	UserID               string `mapstructure:"user_id"`
	DefaultEventDuration int    `mapstructure:"default_event_duration"`
	DueSoonWindowDays    int    `mapstructure:"due_soon_window_days"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "WeekPlanner")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// Storage defaults; an empty dir resolves to the OS data directory
	// at open time.
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.dir", "")
	viper.SetDefault("storage.sqlite_path", "")

	// Planner defaults
	viper.SetDefault("planner.user_id", "local-user")
	viper.SetDefault("planner.default_event_duration", 30)
	viper.SetDefault("planner.due_soon_window_days", 3)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output", "stderr")
	viper.SetDefault("logger.filename", "")
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.debug", "APP_DEBUG")

	// Storage
	viper.BindEnv("storage.backend", "PLANNER_STORAGE_BACKEND")
	viper.BindEnv("storage.dir", "PLANNER_DATA_DIR")
	viper.BindEnv("storage.sqlite_path", "PLANNER_SQLITE_PATH")

	// Planner
	viper.BindEnv("planner.user_id", "PLANNER_USER_ID")
	viper.BindEnv("planner.default_event_duration", "PLANNER_DEFAULT_EVENT_DURATION")
	viper.BindEnv("planner.due_soon_window_days", "PLANNER_DUE_SOON_WINDOW_DAYS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", cfg.Storage.Backend)
	}

	if cfg.Planner.UserID == "" {
		return fmt.Errorf("planner user id is required")
	}

	if cfg.Planner.DefaultEventDuration <= 0 {
		return fmt.Errorf("default event duration must be positive")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
