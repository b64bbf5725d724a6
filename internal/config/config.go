package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

type Config struct {
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	DBDriver   string `toml:"db_driver"`
	SQLitePath string `toml:"sqlite_path"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// read-through query cache, 0 disables it
	CacheSizeMB int `toml:"cache_size_mb"`

	// telemetry
	TracingEnabled      bool   `toml:"tracing_enabled"`
	MetricsTextfilePath string `toml:"metrics_textfile_path"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied and the result validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for in-memory TOML content.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.applyDefaults(env)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DBDriver == "" {
		c.DBDriver = DBDriverSQLite
	}
	if c.DBDriver == DBDriverSQLite && c.SQLitePath == "" {
		c.SQLitePath = "./kaidandiet.db"
	}
	if c.DBDriver == DBDriverPostgres {
		if c.PostgresPort == "" {
			c.PostgresPort = "5432"
		}
		if c.PostgresUser == "" {
			c.PostgresUser = "postgres"
		}
	}
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DBDriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path not set")
		}
	case DBDriverPostgres:
		if c.PostgresHost == "" || c.PostgresDBName == "" {
			return errors.New("postgres_host and postgres_db_name must be set")
		}
	default:
		return fmt.Errorf("unknown db_driver: %s", c.DBDriver)
	}
	if c.CacheSizeMB < 0 {
		return fmt.Errorf("cache_size_mb must not be negative: %d", c.CacheSizeMB)
	}
	return nil
}
