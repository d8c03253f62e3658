// Package config loads the server settings from an optional YAML file and
// the environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/erazemk/registro/internal/db"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Timezone string         `yaml:"timezone"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	// Path is an optional file that receives every log line in addition to
	// stdout/stderr.
	Path string `yaml:"path"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":3000"},
		Database: DatabaseConfig{Driver: db.DriverSQLite, DSN: "registro.sqlite3"},
		Timezone: "Local",
	}
}

// Load reads the YAML file at path over the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. Variables already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from REGISTRO_* environment variables. PORT and
// DATABASE_URL are honored as well when their REGISTRO_* counterparts are
// unset; a postgres:// DATABASE_URL also selects the postgres driver.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.DSN = url
		if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
			c.Database.Driver = db.DriverPostgres
		}
	}
	c.Server.Addr = getEnv("REGISTRO_ADDR", c.Server.Addr)
	c.Database.Driver = getEnv("REGISTRO_DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("REGISTRO_DB_DSN", c.Database.DSN)
	c.Timezone = getEnv("REGISTRO_TIMEZONE", c.Timezone)
	c.Log.Path = getEnv("REGISTRO_LOG", c.Log.Path)
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server address is required")
	}
	switch c.Database.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. An empty value means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
