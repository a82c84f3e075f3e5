package config

import (
	"os"
	"path/filepath"
	"testing"

	"stock-dashboard/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestNewConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "name: dash\nport: 9100\n")

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "dash", cfg.Name)
	assert.Equal(t, "memory", cfg.Storage.DBType)
	assert.Equal(t, 7, cfg.Storage.RetentionDays)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIBaseURL)
	assert.Equal(t, 2, cfg.Telegram.Workers)
	assert.Equal(t, string(models.ThemeLight), cfg.Theme)
	assert.Equal(t, "xkrx", cfg.Market.MIC)
}

func TestNewConfigEnvOverridesYAML(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("DASHBOARD_TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("DASHBOARD_LOG_LEVEL", "DEBUG")

	path := writeConfig(t, "name: dash\nport: 9100\ntelegram:\n  bot_token: from-yaml\n  chat_id: yaml-chat\n")

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	creds := cfg.InitialCredentials()
	assert.Equal(t, "123:abc", creds.BotToken)
	assert.Equal(t, "-100200", creds.ChatID)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"port":     "name: dash\nport: 80\n",
		"theme":    "name: dash\nport: 9100\ntheme: blue\n",
		"db type":  "name: dash\nport: 9100\nstorage:\n  db_type: mongo\n",
		"sqlite":   "name: dash\nport: 9100\nstorage:\n  db_type: sqlite\n",
		"postgres": "name: dash\nport: 9100\nstorage:\n  db_type: postgres\n",
		"api url":  "name: dash\nport: 9100\ntelegram:\n  api_base_url: ftp://x\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeConfig(t, "name: dash\nport: 9100\n")
	cfg, err := NewConfig(path)
	require.NoError(t, err)

	cfg.Theme = string(models.ThemeDark)
	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(out))

	reloaded, err := NewConfig(out)
	require.NoError(t, err)
	assert.Equal(t, string(models.ThemeDark), reloaded.Theme)
}
