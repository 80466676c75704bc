package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTP Server
	Port     string
	BindAddr string

	// Backend selection
	DataBackend string

	// File backend
	DataFile string

	// Database
	SQLiteDBPath string

	// Redis
	RedisAddr   string
	RedisDB     int
	RedisPrefix string

	// Persistence
	PersistTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port:     getEnv("PORT", "8081"),
		BindAddr: getEnv("BIND_ADDR", "127.0.0.1"),

		DataBackend: getEnv("DATA_BACKEND", "file"),
		DataFile:    getEnv("DATA_FILE", "./data/gastos.json"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/gastos.db"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPrefix: getEnv("REDIS_PREFIX", "gastos:"),

		PersistTimeout: getEnvDuration("PERSIST_TIMEOUT", 2*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// LoadFile loads the environment configuration and overlays the YAML file at
// path. Keys absent from the file keep their environment or default value.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var overlay fileConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := overlay.applyTo(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// fileConfig mirrors Config with pointer fields so unset keys can be told apart.
type fileConfig struct {
	Port           *string `yaml:"port"`
	BindAddr       *string `yaml:"bind_addr"`
	DataBackend    *string `yaml:"data_backend"`
	DataFile       *string `yaml:"data_file"`
	SQLiteDBPath   *string `yaml:"sqlite_db_path"`
	RedisAddr      *string `yaml:"redis_addr"`
	RedisDB        *int    `yaml:"redis_db"`
	RedisPrefix    *string `yaml:"redis_prefix"`
	PersistTimeout *string `yaml:"persist_timeout"`
	LogLevel       *string `yaml:"log_level"`
	LogFormat      *string `yaml:"log_format"`
}

func (f fileConfig) applyTo(c *Config) error {
	setString(&c.Port, f.Port)
	setString(&c.BindAddr, f.BindAddr)
	setString(&c.DataBackend, f.DataBackend)
	setString(&c.DataFile, f.DataFile)
	setString(&c.SQLiteDBPath, f.SQLiteDBPath)
	setString(&c.RedisAddr, f.RedisAddr)
	setString(&c.RedisPrefix, f.RedisPrefix)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogFormat, f.LogFormat)
	if f.RedisDB != nil {
		c.RedisDB = *f.RedisDB
	}
	if f.PersistTimeout != nil {
		d, err := time.ParseDuration(*f.PersistTimeout)
		if err != nil {
			return fmt.Errorf("invalid persist_timeout %q: %w", *f.PersistTimeout, err)
		}
		c.PersistTimeout = d
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "file", "sqlite", "redis"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "file":
		if c.DataFile == "" {
			errors = append(errors, "data file path cannot be empty when using file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	case "redis":
		if c.RedisAddr == "" {
			errors = append(errors, "Redis address cannot be empty when using redis backend")
		}
		if c.RedisDB < 0 {
			errors = append(errors, fmt.Sprintf("invalid redis db %d: must not be negative", c.RedisDB))
		}
	}

	if c.PersistTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid persist timeout %v: must not be negative", c.PersistTimeout))
	} else if c.PersistTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid persist timeout %v: must be at most 1 minute", c.PersistTimeout))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
