// Package config loads qimen's runtime configuration.
// Values are populated from .qimen.yaml, QIMEN_* env vars, and CLI flags,
// with built-in defaults for anything left unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig indicates a configuration value outside its allowed set.
var ErrInvalidConfig = errors.New("invalid configuration")

// Calendar provider names.
const (
	ProviderAstro  = "astro"
	ProviderStatic = "static"
	ProviderRemote = "remote"
)

// Output formats.
var Formats = []string{"text", "json", "yaml", "toml"}

// RemoteConfig holds settings for the GraphQL almanac provider.
type RemoteConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	TokenEnv     string `mapstructure:"token_env"`
	TokenFile    string `mapstructure:"token_file"`
	TokenCommand string `mapstructure:"token_command"`
}

// JournalConfig holds settings for the chart journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config holds all runtime configuration for a qimen session.
type Config struct {
	Method    int           `mapstructure:"method"`
	Provider  string        `mapstructure:"provider"`
	TermsFile string        `mapstructure:"terms_file"`
	Format    string        `mapstructure:"format"`
	Verbose   bool          `mapstructure:"verbose"`
	Remote    RemoteConfig  `mapstructure:"remote"`
	Journal   JournalConfig `mapstructure:"journal"`
}

// Init points viper at the config file (or the default .qimen.yaml in the
// working or home directory) and the QIMEN_* environment. A missing default
// file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".qimen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func bindEnv() {
	viper.SetEnvPrefix("QIMEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	bindEnv()

	viper.SetDefault("method", 1)
	viper.SetDefault("provider", ProviderAstro)
	viper.SetDefault("terms_file", "")
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("remote.endpoint", "http://localhost:8080/graphql")
	viper.SetDefault("remote.token_env", "QIMEN_CALENDAR_TOKEN")
	viper.SetDefault("remote.token_file", "")
	viper.SetDefault("remote.token_command", "")
	viper.SetDefault("journal.enabled", false)
	viper.SetDefault("journal.path", defaultJournalPath())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	if c.Method != 1 && c.Method != 2 {
		return fmt.Errorf("%w: method must be 1 or 2, got %d", ErrInvalidConfig, c.Method)
	}
	switch c.Provider {
	case ProviderAstro, ProviderRemote:
	case ProviderStatic:
		if c.TermsFile == "" {
			return fmt.Errorf("%w: provider %q needs terms_file", ErrInvalidConfig, c.Provider)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.Provider)
	}
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
}

func defaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".qimen", "journal.db")
	}
	return filepath.Join(home, ".qimen", "journal.db")
}
