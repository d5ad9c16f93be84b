package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "6mo", cfg.DataSource.ChartRange)
	assert.Equal(t, "assets/charts", cfg.Charts.Dir)
	assert.True(t, cfg.Charts.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Charts.Retention)
	assert.Equal(t, 5*time.Second, cfg.Search.Wait)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "friday.yaml", `
server:
  host: 127.0.0.1
  port: 8080
  read_timeout: 5s
data_source:
  chart_range: 1y
charts:
  enabled: false
  retention: 2h
watchlist: [tcs, infy]
log:
  level: debug
`)
	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "1y", cfg.DataSource.ChartRange)
	assert.False(t, cfg.Charts.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Charts.Retention)
	assert.Equal(t, []string{"tcs", "infy"}, cfg.Watchlist)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	envFile := writeFile(t, ".env", "TELEGRAM_BOT_TOKEN=from-dotenv\nTELEGRAM_CHAT_ID=99\n")
	t.Setenv("PORT", "7000")
	t.Setenv("FRIDAY_WATCHLIST", "tcs, reliance ,")
	t.Setenv("FRIDAY_LOG_LEVEL", "WARN")
	t.Setenv("HTTPS_PROXY", "http://proxy.local:3128")
	t.Cleanup(func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("TELEGRAM_CHAT_ID")
	})

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "from-dotenv", cfg.Telegram.BotToken)
	assert.Equal(t, "99", cfg.Telegram.ChatID)
	assert.Equal(t, []string{"tcs", "reliance"}, cfg.Watchlist)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yaml", "server: ["), "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)

	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())
	cfg.Log.Level = "info"

	cfg.DataSource.ChartRange = "10y"
	assert.Error(t, cfg.Validate())
	cfg.DataSource.ChartRange = "6mo"

	cfg.Schedule.DigestCron = "0 30 9 * * 1-5"
	cfg.Watchlist = []string{"tcs"}
	assert.ErrorContains(t, cfg.Validate(), "digest_cron")

	cfg.Telegram.BotToken, cfg.Telegram.ChatID = "t", "1"
	assert.NoError(t, cfg.Validate())
}
