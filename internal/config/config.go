package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultWebhookURL = "http://localhost:3000/webhook/insider-trading"

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Polling struct {
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"polling"`

	SEC struct {
		// Contact is the identifying User-Agent string EDGAR requires,
		// e.g. "insiderwatch/1.0 (ops@example.com)". No request goes out
		// without it.
		Contact   string `yaml:"contact"`
		FeedCount int    `yaml:"feed_count"`
	} `yaml:"sec"`

	Watchlist []string `yaml:"watchlist"`

	Sinks struct {
		Webhook struct {
			URL string `yaml:"url"`
		} `yaml:"webhook"`
		Telegram struct {
			ChatID string `yaml:"chat_id"`
		} `yaml:"telegram"`
		Email struct {
			Enabled  bool   `yaml:"enabled"`
			SMTPHost string `yaml:"smtp_host"`
			SMTPPort int    `yaml:"smtp_port"`
			Username string `yaml:"username"`
			From     string `yaml:"from"`
			To       string `yaml:"to"`
		} `yaml:"email"`
	} `yaml:"sinks"`
}

func Default() Config {
	var cfg Config
	cfg.Polling.IntervalMinutes = 30
	cfg.SEC.FeedCount = 100
	cfg.Sinks.Webhook.URL = DefaultWebhookURL
	cfg.Sinks.Email.SMTPPort = 587
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
