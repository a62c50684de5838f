package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vaughan-dsouza/posts-api/internal/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EngineSQL  = "sql"
	EngineGorm = "gorm"
)

// Config holds everything the api process needs at startup.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port                   string `mapstructure:"port"`
	Mode                   string `mapstructure:"mode"` // debug / release
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

// DatabaseConfig selects the driver (postgres/sqlite) and the store engine (sql/gorm).
type DatabaseConfig struct {
	Driver string     `mapstructure:"driver"`
	DSN    string     `mapstructure:"dsn"`
	Engine string     `mapstructure:"engine"`
	Pool   PoolConfig `mapstructure:"pool"`
}

type PoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
}

type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions converts the log section into logger options.
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// env bindings, key -> variable
var envBindings = map[string]string{
	"server.port":                             "PORT",
	"server.mode":                             "APP_MODE",
	"server.shutdown_timeout_seconds":         "SHUTDOWN_TIMEOUT",
	"database.driver":                         "DB_DRIVER",
	"database.dsn":                            "DATABASE_URL",
	"database.engine":                         "DB_ENGINE",
	"database.pool.max_open_conns":            "DB_MAX_OPEN",
	"database.pool.max_idle_conns":            "DB_MAX_IDLE",
	"database.pool.conn_max_lifetime_seconds": "DB_MAX_LIFETIME",
	"log.dir":                                 "LOG_DIR",
	"log.filename":                            "LOG_FILENAME",
	"log.max_size_mb":                         "LOG_MAX_SIZE_MB",
	"log.max_backups":                         "LOG_MAX_BACKUPS",
	"log.max_age_days":                        "LOG_MAX_AGE_DAYS",
	"log.compress":                            "LOG_COMPRESS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout_seconds", 5)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.engine", EngineSQL)
	v.SetDefault("database.pool.max_open_conns", 25)
	v.SetDefault("database.pool.max_idle_conns", 25)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 300)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
}

// Load reads .env, an optional config.yaml and the environment, in increasing priority.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debugw("no .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./etc")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Server.Port = strings.TrimSpace(c.Server.Port)
	c.Server.Mode = strings.ToLower(strings.TrimSpace(c.Server.Mode))
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "postgresql" {
		c.Database.Driver = DriverPostgres
	}
	c.Database.Engine = strings.ToLower(strings.TrimSpace(c.Database.Engine))
	c.Database.DSN = strings.TrimSpace(c.Database.DSN)
}

// Validate reports the first configuration problem that would stop the server.
func (c *Config) Validate() error {
	if _, err := strconv.ParseUint(c.Server.Port, 10, 16); err != nil {
		return fmt.Errorf("config: invalid port %q", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	switch c.Database.Engine {
	case EngineSQL, EngineGorm:
	default:
		return fmt.Errorf("config: unsupported database engine %q", c.Database.Engine)
	}
	if c.Database.DSN == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	return nil
}

// Addr is the listen address for the http server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
