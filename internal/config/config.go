// ABOUTME: Viper-backed configuration for the faris CLI
// ABOUTME: Merges config file, FARIS_* environment variables and defaults

package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Moshe-ship/faris-ai-saas/internal/statefile"
)

// DefaultAPIURL is used when neither flag, environment nor file sets one
const DefaultAPIURL = "http://localhost:8000"

// Config is the complete CLI configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	State   StateConfig   `mapstructure:"state"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// APIConfig locates the backend
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StateConfig locates durable client state
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment.
// apiURL, when non-empty, overrides every other source.
func Load(cfgFile, apiURL string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(statefile.DefaultDir())
	}

	v.SetEnvPrefix("FARIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if apiURL != "" {
		v.Set("api.url", apiURL)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.API.URL = strings.TrimRight(cfg.API.URL, "/")
	if cfg.State.Dir != "" {
		cfg.State.Dir = filepath.Clean(cfg.State.Dir)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		API:     APIConfig{URL: DefaultAPIURL, Timeout: 30 * time.Second},
		State:   StateConfig{Dir: statefile.DefaultDir()},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
		Output:  OutputConfig{Colors: true},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api.url", d.API.URL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("state.dir", d.State.Dir)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("output.colors", d.Output.Colors)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url: %q (must be http or https)", cfg.API.URL)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("invalid api timeout: %s (must be positive)", cfg.API.Timeout)
	}

	if cfg.State.Dir == "" {
		return fmt.Errorf("state directory is not set")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", cfg.Logging.Format)
	}

	return nil
}
