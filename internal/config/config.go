package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig    = "TRANSCRIPT_CONFIG"
	EnvLanguages = "TRANSCRIPT_LANGUAGES"
	EnvTimeout   = "TRANSCRIPT_TIMEOUT"
	EnvLogLevel  = "TRANSCRIPT_LOG_LEVEL"
)

// Config holds the settings of the extractor.
type Config struct {
	// Languages in order of preference.
	Languages          []string      `yaml:"languages"`
	Timeout            time.Duration `yaml:"timeout"`
	LogLevel           string        `yaml:"log_level"`
	BaseURL            string        `yaml:"base_url"`
	PreserveFormatting bool          `yaml:"preserve_formatting"`
}

func Default() *Config {
	return &Config{
		Languages: []string{"de", "en"},
		Timeout:   30 * time.Second,
		LogLevel:  "warn",
		BaseURL:   "https://www.youtube.com",
	}
}

// Load builds the configuration from defaults, the YAML file at path (or the
// one named by TRANSCRIPT_CONFIG) and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLanguages); v != "" {
		c.Languages = ParseLanguages(v)
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the language codes are BCP 47 tags and the rest is usable.
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return errors.New("at least one language is required")
	}
	for _, lang := range c.Languages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("invalid language code %q: %w", lang, err)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// ParseLanguages splits a comma separated list, dropping blanks.
func ParseLanguages(s string) []string {
	var langs []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			langs = append(langs, part)
		}
	}
	return langs
}
