package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"insiderwatch/internal/domain"
)

const telegramAPI = "https://api.telegram.org"

// TelegramSink sends a rich-text alert via the Bot API. Construct it only
// when both token and chat id are configured; an unconfigured chat sink is
// simply absent from the dispatcher, not an error.
type TelegramSink struct {
	ChatID string

	token string
	api   string
	hc    *http.Client
}

func NewTelegramSink(token, chatID string) *TelegramSink {
	return &TelegramSink{
		ChatID: chatID,
		token:  token,
		api:    telegramAPI,
		hc:     &http.Client{Timeout: webhookTimeout},
	}
}

func (t *TelegramSink) Name() string { return "telegram" }

func (t *TelegramSink) Deliver(ctx context.Context, f domain.Filing) error {
	body, err := json.Marshal(map[string]any{
		"chat_id":                  t.ChatID,
		"text":                     formatAlert(f),
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.api, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.hc.Do(req)
	if err != nil {
		return fmt.Errorf("telegram post: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("telegram status %d", res.StatusCode)
	}
	return nil
}

func formatAlert(f domain.Filing) string {
	var b strings.Builder

	b.WriteString("🟢 <b>Insider Trading Alert</b>\n\n")
	fmt.Fprintf(&b, "🏢 <b>Company:</b> %s\n", html.EscapeString(orNA(f.CompanyName)))
	fmt.Fprintf(&b, "📊 <b>Ticker:</b> <code>%s</code>\n", html.EscapeString(orNA(f.Ticker)))
	fmt.Fprintf(&b, "📅 <b>Date:</b> %s\n", html.EscapeString(orNA(f.FilingDate)))
	if f.URL != "" {
		fmt.Fprintf(&b, "🔗 <a href=\"%s\">View Filing</a>\n", html.EscapeString(f.URL))
	}
	fmt.Fprintf(&b, "\n🕐 %s", time.Now().UTC().Format("2006-01-02 15:04:05 MST"))

	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
