// Package config loads coinfolio settings from an optional YAML file, a .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"coinfolio/internal/logger"
)

// Supported values of DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Env  string `yaml:"env"`
	Port string `yaml:"port"`

	// Database
	DBDriver   string `yaml:"db_driver"`
	DBPath     string `yaml:"db_path"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`

	// MigrationsDir is the golang-migrate source directory for PostgreSQL.
	MigrationsDir string `yaml:"migrations_dir"`
}

// Defaults returns the built-in configuration: a local SQLite file.
func Defaults() *Config {
	return &Config{
		Env:           "development",
		Port:          "8080",
		DBDriver:      DriverSQLite,
		DBPath:        "coinfolio.db",
		DBHost:        "localhost",
		DBPort:        "5432",
		DBUser:        "coinfolio",
		DBPassword:    "coinfolio",
		DBName:        "coinfolio",
		DBSSLMode:     "disable",
		MigrationsDir: "migrations",
	}
}

// Load builds the configuration. CONFIG_FILE may name a YAML file whose
// values replace the defaults; environment variables (optionally from .env)
// override both.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using process environment")
	}

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	override(&c.Env, "ENV")
	override(&c.Port, "PORT")
	override(&c.DBDriver, "DB_DRIVER")
	override(&c.DBPath, "DB_PATH")
	override(&c.DBHost, "DB_HOST")
	override(&c.DBPort, "DB_PORT")
	override(&c.DBUser, "DB_USER")
	override(&c.DBPassword, "DB_PASSWORD")
	override(&c.DBName, "DB_NAME")
	override(&c.DBSSLMode, "DB_SSLMODE")
	override(&c.MigrationsDir, "MIGRATIONS_DIR")
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use sqlite or postgres)", c.DBDriver)
	}
	if c.DBDriver == DriverSQLite && c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required for the sqlite driver")
	}
	return nil
}

// PostgresDSN returns the key/value connection string used by GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// PostgresURL returns the URL form used by golang-migrate.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// override replaces *dst with the environment variable key when it is set.
func override(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}
