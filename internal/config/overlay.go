package config

import (
	"os"
	"strconv"
)

// OverlayEnv applies environment overrides on top of the loaded file.
// Env wins over yaml; flags (applied by the caller) win over env.
func OverlayEnv(cfg *Config) {
	if v := os.Getenv("INSIDERWATCH_DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		cfg.Sinks.Webhook.URL = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Sinks.Telegram.ChatID = v
	}
	if v := os.Getenv("SEC_CONTACT"); v != "" {
		cfg.SEC.Contact = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Sinks.Email.SMTPHost = v
		cfg.Sinks.Email.Enabled = true
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Sinks.Email.SMTPPort = p
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.Sinks.Email.Username = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.Sinks.Email.From = v
	}
	if v := os.Getenv("SMTP_TO"); v != "" {
		cfg.Sinks.Email.To = v
	}
}
