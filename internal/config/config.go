// Package config loads the backend configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file referenced by CONFIG_FILE and finally environment variables. The
// result is passed explicitly to everything that needs it.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	APIURL           string   `yaml:"api_url"`
	GinMode          string   `yaml:"gin_mode"`
	LogFormat        string   `yaml:"log_format"` // "human" or "json", empty selects by gin mode
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	EnablePprof      bool     `yaml:"enable_pprof"`

	Database DatabaseConfig `yaml:"database"`
	Advisor  AdvisorConfig  `yaml:"advisor"`

	// SuggestionLocale is the BCP 47 tag used to format heuristic budget suggestions
	SuggestionLocale string `yaml:"suggestion_locale"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// AdvisorConfig configures the optional language model used for
// allocation and analysis suggestions. An empty APIKey disables it.
type AdvisorConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		APIURL:  "http://localhost:8080",
		GinMode: "release",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "data/gorm.db",
		},
		Advisor: AdvisorConfig{
			BaseURL: "https://dashscope.aliyuncs.com/api/v1",
			Model:   "qwen-plus",
			Timeout: 15 * time.Second,
		},
		SuggestionLocale: "en",
	}
}

// Load reads .env (if present), the YAML file in CONFIG_FILE (if set) and
// the environment, in that order of increasing precedence.
func Load() (Config, error) {
	// A missing .env file is the normal case in production
	_ = godotenv.Load()

	cfg := Default()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.APIURL = getEnv("API_URL", c.APIURL)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.EnablePprof = getEnvBool("ENABLE_PPROF", c.EnablePprof)

	if origins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		c.CORSAllowOrigins = strings.Fields(origins)
	}

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_DSN", c.Database.DSN)

	c.Advisor.BaseURL = getEnv("ADVISOR_BASE_URL", c.Advisor.BaseURL)
	c.Advisor.APIKey = getEnv("ADVISOR_API_KEY", c.Advisor.APIKey)
	c.Advisor.Model = getEnv("ADVISOR_MODEL", c.Advisor.Model)
	c.Advisor.Timeout = getEnvDuration("ADVISOR_TIMEOUT", c.Advisor.Timeout)

	c.SuggestionLocale = getEnv("SUGGESTION_LOCALE", c.SuggestionLocale)
}

// Validate validates the configuration and returns an error listing all problems.
func (c Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", c.APIURL))
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		problems = append(problems, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", c.Database.Driver, DriverSQLite, DriverPostgres))
	}

	if c.Database.DSN == "" {
		problems = append(problems, "database DSN cannot be empty")
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if c.Advisor.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid advisor timeout %v: must be positive", c.Advisor.Timeout))
	}

	if c.AdvisorEnabled() {
		if _, err := url.Parse(c.Advisor.BaseURL); err != nil || c.Advisor.BaseURL == "" {
			problems = append(problems, fmt.Sprintf("invalid advisor base URL '%s'", c.Advisor.BaseURL))
		}
	}

	if _, err := language.Parse(c.SuggestionLocale); err != nil {
		problems = append(problems, fmt.Sprintf("invalid suggestion locale '%s': %v", c.SuggestionLocale, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// AdvisorEnabled reports whether an advisor API key is configured.
func (c Config) AdvisorEnabled() bool {
	return c.Advisor.APIKey != ""
}

// Locale returns the parsed suggestion locale, English if it does not parse.
func (c Config) Locale() language.Tag {
	tag, err := language.Parse(c.SuggestionLocale)
	if err != nil {
		return language.English
	}

	return tag
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
