// Package config loads FRIDAY's settings from YAML, a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port" validate:"min=1,max=65535"`
		ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
		WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
	} `yaml:"server"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		YahooURL   string        `yaml:"yahoo_url" validate:"required,url"`
		MFAPIURL   string        `yaml:"mfapi_url" validate:"required,url"`
		ChartRange string        `yaml:"chart_range" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
		Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
		RateLimit  int           `yaml:"rate_limit" validate:"min=0"`
	} `yaml:"data_source"`
	Search struct {
		WikipediaURL  string        `yaml:"wikipedia_url" validate:"required,url"`
		DuckDuckGoURL string        `yaml:"duckduckgo_url" validate:"required,url"`
		BingURL       string        `yaml:"bing_url" validate:"required,url"`
		Wait          time.Duration `yaml:"wait" validate:"gt=0"`
	} `yaml:"search"`
	Charts struct {
		Enabled   bool          `yaml:"enabled"`
		Dir       string        `yaml:"dir" validate:"required"`
		Retention time.Duration `yaml:"retention" validate:"gt=0"`
	} `yaml:"charts"`
	Schedule struct {
		CleanupCron string `yaml:"cleanup_cron" validate:"required"`
		DigestCron  string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Watchlist []string `yaml:"watchlist"`
	Database  struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" validate:"omitempty,url"`
}

// Load reads config from a YAML file, then a .env file, then applies
// environment variable overrides and defaults. Missing files are skipped.
func Load(path, envPath string) (*Config, error) {
	cfg := &Config{}
	cfg.Charts.Enabled = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FRIDAY_HOST"); v != "" {
		cfg.Server.Host = v
	}
	for _, key := range []string{"PORT", "FRIDAY_PORT"} {
		if v := os.Getenv(key); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				cfg.Server.Port = port
			}
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FRIDAY_CHART_RANGE"); v != "" {
		cfg.DataSource.ChartRange = v
	}
	if v := os.Getenv("FRIDAY_CHART_DIR"); v != "" {
		cfg.Charts.Dir = v
	}
	if v := os.Getenv("FRIDAY_CHARTS"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Charts.Enabled = on
		}
	}
	if v := os.Getenv("FRIDAY_WATCHLIST"); v != "" {
		cfg.Watchlist = splitList(v)
	}
	if v := os.Getenv("FRIDAY_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("FRIDAY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("FRIDAY_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.DataSource.YahooURL == "" {
		cfg.DataSource.YahooURL = "https://query1.finance.yahoo.com"
	}
	if cfg.DataSource.MFAPIURL == "" {
		cfg.DataSource.MFAPIURL = "https://api.mfapi.in"
	}
	if cfg.DataSource.ChartRange == "" {
		cfg.DataSource.ChartRange = "6mo"
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.DataSource.RateLimit == 0 {
		cfg.DataSource.RateLimit = 5
	}
	if cfg.Search.WikipediaURL == "" {
		cfg.Search.WikipediaURL = "https://en.wikipedia.org"
	}
	if cfg.Search.DuckDuckGoURL == "" {
		cfg.Search.DuckDuckGoURL = "https://html.duckduckgo.com"
	}
	if cfg.Search.BingURL == "" {
		cfg.Search.BingURL = "https://www.bing.com"
	}
	if cfg.Search.Wait == 0 {
		cfg.Search.Wait = 5 * time.Second
	}
	if cfg.Charts.Dir == "" {
		cfg.Charts.Dir = "assets/charts"
	}
	if cfg.Charts.Retention == 0 {
		cfg.Charts.Retention = 24 * time.Hour
	}
	if cfg.Schedule.CleanupCron == "" {
		cfg.Schedule.CleanupCron = "0 0 3 * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// TelegramEnabled reports whether a bot token is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

// Validate checks field constraints. A digest schedule needs a watchlist
// and a Telegram chat to send to.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Schedule.DigestCron != "" && len(c.Watchlist) > 0 && (c.Telegram.BotToken == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("schedule.digest_cron requires telegram.bot_token and telegram.chat_id")
	}
	return nil
}
