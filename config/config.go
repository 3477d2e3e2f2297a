// Package config loads the defaults of the imc command line.
//
// Values come, by increasing priority, from the built-in defaults, an optional
// YAML file, a ".env" file in the working directory and the IMMO_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/immo"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config holds the imc defaults.
type Config struct {
	Currency   string          `yaml:"currency"`
	Mode       string          `yaml:"mode"`
	Heuristics immo.Heuristics `yaml:"heuristics"`
	LogLevel   string          `yaml:"log_level"`
	LogFormat  string          `yaml:"log_format"` // "text" or "json"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Currency:   "EUR",
		Mode:       string(immo.Realized),
		Heuristics: immo.DefaultHeuristics,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load returns the configuration read from the YAML file at path, then from
// the environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}

	// a missing .env is the common case
	_ = godotenv.Load()

	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fromEnv overrides c with the IMMO_* variables that are set.
func (c *Config) fromEnv() error {
	var errs []error
	getEnv := func(key string, v *string) {
		if s, ok := os.LookupEnv(key); ok {
			*v = s
		}
	}
	getEnvFloat := func(key string, v *float64) {
		s, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: must be a number", key, s))
			return
		}
		*v = f
	}

	getEnv("IMMO_CURRENCY", &c.Currency)
	getEnv("IMMO_MODE", &c.Mode)
	getEnvFloat("IMMO_NON_RECOVERABLE_RATE", &c.Heuristics.NonRecoverableChargesRate)
	getEnvFloat("IMMO_DEFAULT_OCCUPANCY", &c.Heuristics.DefaultOccupancyRate)
	getEnv("IMMO_LOG_LEVEL", &c.LogLevel)
	getEnv("IMMO_LOG_FORMAT", &c.LogFormat)
	return errors.Join(errs...)
}

var logFormats = []string{"text", "json"}

// Validate reports every invalid value of the configuration.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("invalid currency %q: must be an ISO 4217 code", c.Currency))
	}
	if _, err := immo.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if err := c.Heuristics.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be one of %v", c.LogFormat, logFormats))
	}
	return errors.Join(errs...)
}

// Logger returns a logger writing to stderr with the configured level and
// format. Invalid values fall back to info and text.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
