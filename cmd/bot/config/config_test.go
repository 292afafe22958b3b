package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullYAML = `
bot:
  token: "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"
  state_file: "/var/lib/bot/state.json"
  export_threshold: 30
  default_time: "19:00-21:00"
  default_venue: "Сокольники"
server:
  host: "127.0.0.1"
  port: 8081
  shutdown_timeout_seconds: 15
logging:
  level: "debug"
  format: "text"
`

const minimalYAML = `
bot:
  token: "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		cfg, err := Load(createTempConfigFile(t, fullYAML))
		require.NoError(t, err)

		assert.Equal(t, "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11", cfg.Bot.Token)
		assert.Equal(t, "/var/lib/bot/state.json", cfg.Bot.StateFile)
		assert.Equal(t, 30, cfg.Bot.ExportThreshold)
		assert.Equal(t, "19:00-21:00", cfg.Bot.DefaultTime)
		assert.Equal(t, "Сокольники", cfg.Bot.DefaultVenue)
		assert.Equal(t, "127.0.0.1", cfg.Server.Host)
		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, "127.0.0.1:8081", cfg.Address())
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
	})

	t.Run("minimal config gets defaults", func(t *testing.T) {
		cfg, err := Load(createTempConfigFile(t, minimalYAML))
		require.NoError(t, err)

		assert.Equal(t, DefaultStateFile, cfg.Bot.StateFile)
		assert.Equal(t, DefaultExportThreshold, cfg.Bot.ExportThreshold)
		assert.Equal(t, DefaultMatchTime, cfg.Bot.DefaultTime)
		assert.Equal(t, DefaultVenue, cfg.Bot.DefaultVenue)
		assert.Equal(t, DefaultServerHost, cfg.Server.Host)
		assert.Equal(t, DefaultServerPort, cfg.Server.Port)
		assert.Equal(t, DefaultShutdownTimeoutSecs, cfg.Server.ShutdownTimeoutSeconds)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("BOT_TOKEN env overrides file", func(t *testing.T) {
		t.Setenv("BOT_TOKEN", "999999:EnvTokenOverridesYamlValue1234567")
		cfg, err := Load(createTempConfigFile(t, fullYAML))
		require.NoError(t, err)
		assert.Equal(t, "999999:EnvTokenOverridesYamlValue1234567", cfg.Bot.Token)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(createTempConfigFile(t, "invalid yaml: {"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	validConfig := func(t *testing.T) *Config {
		cfg, err := Load(createTempConfigFile(t, fullYAML))
		require.NoError(t, err)
		return cfg
	}

	testCases := []struct {
		name    string
		mutator func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty token", func(c *Config) { c.Bot.Token = "" }, true},
		{"placeholder token", func(c *Config) { c.Bot.Token = "YOUR_TELEGRAM_BOT_TOKEN" }, true},
		{"empty state file", func(c *Config) { c.Bot.StateFile = "" }, true},
		{"non-positive export threshold", func(c *Config) { c.Bot.ExportThreshold = 0 }, true},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"invalid shutdown timeout", func(c *Config) { c.Server.ShutdownTimeoutSeconds = 0 }, true},
		{"invalid logging level", func(c *Config) { c.Logging.Level = "wrong" }, true},
		{"invalid logging format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig(t)
			tc.mutator(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
