package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Method", cfg.Method, 1},
		{"Provider", cfg.Provider, ProviderAstro},
		{"Format", cfg.Format, "text"},
		{"Verbose", cfg.Verbose, false},
		{"Remote.TokenEnv", cfg.Remote.TokenEnv, "QIMEN_CALENDAR_TOKEN"},
		{"Journal.Enabled", cfg.Journal.Enabled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.Equal(t, "journal.db", filepath.Base(cfg.Journal.Path))
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "method",
			envKey: "QIMEN_METHOD",
			envVal: "2",
			field:  func(c Config) any { return c.Method },
			want:   2,
		},
		{
			name:   "format",
			envKey: "QIMEN_FORMAT",
			envVal: "json",
			field:  func(c Config) any { return c.Format },
			want:   "json",
		},
		{
			name:   "remote endpoint",
			envKey: "QIMEN_REMOTE_ENDPOINT",
			envVal: "https://almanac.example/graphql",
			field:  func(c Config) any { return c.Remote.Endpoint },
			want:   "https://almanac.example/graphql",
		},
		{
			name:   "journal enabled",
			envKey: "QIMEN_JOURNAL_ENABLED",
			envVal: "true",
			field:  func(c Config) any { return c.Journal.Enabled },
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestInit_ReadsConfigFile(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "qimen.yaml")
	content := "method: 2\nprovider: static\nterms_file: terms.yaml\nformat: yaml\njournal:\n  enabled: true\n  path: /tmp/j.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, Init(path))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Method)
	assert.Equal(t, ProviderStatic, cfg.Provider)
	assert.Equal(t, "terms.yaml", cfg.TermsFile)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, "/tmp/j.db", cfg.Journal.Path)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper(t)
	err := Init(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{Method: 1, Provider: ProviderAstro, Format: "text"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"method", func(c *Config) { c.Method = 3 }},
		{"provider", func(c *Config) { c.Provider = "oracle" }},
		{"static without table", func(c *Config) { c.Provider = ProviderStatic }},
		{"format", func(c *Config) { c.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
