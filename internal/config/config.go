// internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"expense-tracker/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	DB      db.Config
	Logging LoggingConfig
	Display DisplayConfig
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int // rotate the log file once it reaches this size
	MaxBackups int // rotated files to keep
}

// DisplayConfig controls how amounts are presented on the console.
type DisplayConfig struct {
	CurrencySymbol string
}

// envBindings maps viper keys to the environment variables the tracker has
// always used.
var envBindings = map[string]string{
	"database.driver":        "DB_DRIVER",
	"database.host":          "DB_HOST",
	"database.port":          "DB_PORT",
	"database.user":          "DB_USER",
	"database.password":      "DB_PASSWORD",
	"database.name":          "DB_NAME",
	"database.sslmode":       "DB_SSLMODE",
	"database.path":          "DB_PATH",
	"database.create_tables": "CREATE_TABLES",
	"logging.level":          "LOG_LEVEL",
	"logging.format":         "LOG_FORMAT",
	"logging.file":           "LOG_FILE",
	"logging.max_size_mb":    "LOG_MAX_SIZE_MB",
	"logging.max_backups":    "LOG_MAX_BACKUPS",
	"display.currency":       "CURRENCY_SYMBOL",
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", db.DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "$HOME/.local/share/expense/expense.db")
	v.SetDefault("database.create_tables", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "logs/expense.log")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("display.currency", "₹")
}

// LoadConfig reads configuration from v (config file, flags and environment variables).
// It returns an AppConfig instance or an error if any value is missing or invalid.
func LoadConfig(v *viper.Viper) (*AppConfig, error) {
	SetDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("database.driver")))
	if driver == "sqlite" {
		driver = db.DriverSQLite
	}

	port := v.GetInt("database.port")
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid DB_PORT: %q", v.GetString("database.port"))
	}

	cfg := &AppConfig{
		DB: db.Config{
			Driver:       driver,
			Host:         v.GetString("database.host"),
			Port:         port,
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			DBName:       v.GetString("database.name"),
			SSLMode:      v.GetString("database.sslmode"),
			Path:         ExpandPath(v.GetString("database.path")),
			CreateTables: v.GetBool("database.create_tables"),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("logging.level"),
			Format:     v.GetString("logging.format"),
			File:       ExpandPath(v.GetString("logging.file")),
			MaxSizeMB:  v.GetInt("logging.max_size_mb"),
			MaxBackups: v.GetInt("logging.max_backups"),
		},
		Display: DisplayConfig{
			CurrencySymbol: v.GetString("display.currency"),
		},
	}

	if cfg.Logging.MaxSizeMB <= 0 {
		return nil, fmt.Errorf("invalid LOG_MAX_SIZE_MB: %q", v.GetString("logging.max_size_mb"))
	}
	if cfg.Logging.MaxBackups <= 0 {
		return nil, fmt.Errorf("invalid LOG_MAX_BACKUPS: %q", v.GetString("logging.max_backups"))
	}

	switch cfg.DB.Driver {
	case db.DriverPostgres:
		if cfg.DB.DBName == "" {
			return nil, fmt.Errorf("DB_NAME is required for the postgres driver")
		}
	case db.DriverSQLite:
		if cfg.DB.Path == "" {
			return nil, fmt.Errorf("DB_PATH is required for the sqlite3 driver")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite3)", cfg.DB.Driver)
	}

	return cfg, nil
}
