// Package config loads application settings from bound command-line flags,
// environment variables (with an optional .env file), a config file, and
// defaults, in that precedence order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Gemini  Gemini  `mapstructure:"gemini"`
	Scrape  Scrape  `mapstructure:"scrape"`
	Reports Reports `mapstructure:"reports"`
	Logging Logging `mapstructure:"logging"`
}

// Gemini holds generative-backend configuration. A missing APIKey is not a
// load error: the analysis pipeline degrades to its offline heuristic, so
// the binary stays useful without a credential.
type Gemini struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max_retries"`
	Timeout    string `mapstructure:"timeout"`
}

// Scrape holds page-fetching configuration.
type Scrape struct {
	Timeout         string `mapstructure:"timeout"`
	MaxContentChars int    `mapstructure:"max_content_chars"`
}

// Reports holds report output configuration.
type Reports struct {
	Directory string `mapstructure:"directory"`
}

// Logging holds logging configuration.
type Logging struct {
	Level string `mapstructure:"level"`
}

var globalConfig *Config

// Load reads configuration from the given file (or .mia.yaml in the working
// directory and $HOME when empty), after loading .env and binding well-known
// environment variables. The result is cached; call Reset to force a reload.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".mia")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration and viper state (useful for testing).
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// GeminiTimeout returns the parsed per-analysis deadline. The string is
// validated at load time.
func (c *Config) GeminiTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Gemini.Timeout)
	return d
}

// ScrapeTimeout returns the parsed page-fetch timeout. The string is
// validated at load time.
func (c *Config) ScrapeTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Scrape.Timeout)
	return d
}

func setDefaults() {
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.model", "gemini-1.5-flash-latest")
	viper.SetDefault("gemini.max_retries", 3)
	viper.SetDefault("gemini.timeout", "30s")

	viper.SetDefault("scrape.timeout", "15s")
	viper.SetDefault("scrape.max_content_chars", 10000)

	viper.SetDefault("reports.directory", "reports")

	viper.SetDefault("logging.level", "info")
}

func bindEnvironmentVariables() {
	// GEMINI_API_KEY is the documented name; GOOGLE_API_KEY the fallback.
	// Bindings keep env below explicitly bound flags but above the file.
	_ = viper.BindEnv("gemini.api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = viper.BindEnv("gemini.model", "GEMINI_MODEL")
	_ = viper.BindEnv("gemini.max_retries", "GEMINI_MAX_RETRIES")
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")
	_ = viper.BindEnv("reports.directory", "REPORTS_DIR")
}

func validateConfig(config *Config) error {
	var errs []string

	if config.Gemini.MaxRetries < 1 {
		errs = append(errs, fmt.Sprintf("gemini.max_retries must be at least 1, got %d", config.Gemini.MaxRetries))
	}

	durations := map[string]string{
		"gemini.timeout": config.Gemini.Timeout,
		"scrape.timeout": config.Scrape.Timeout,
	}
	for key, duration := range durations {
		if duration == "" {
			continue
		}
		if _, err := time.ParseDuration(duration); err != nil {
			return fmt.Errorf("invalid duration for %s: %s", key, duration)
		}
	}

	if config.Scrape.MaxContentChars < 0 {
		errs = append(errs, "scrape.max_content_chars must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
