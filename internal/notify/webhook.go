package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"insiderwatch/internal/domain"
)

const webhookTimeout = 10 * time.Second

// WebhookSink POSTs a normalized JSON payload to a configured endpoint.
type WebhookSink struct {
	URL string
	hc  *http.Client
}

func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		URL: url,
		hc:  &http.Client{Timeout: webhookTimeout},
	}
}

func (w *WebhookSink) Name() string { return "webhook" }

type webhookPayload struct {
	Type       string `json:"type"`
	Ticker     string `json:"ticker"`
	Company    string `json:"company"`
	FilingDate string `json:"filing_date"`
	URL        string `json:"url"`
	Timestamp  string `json:"timestamp"`
}

func (w *WebhookSink) Deliver(ctx context.Context, f domain.Filing) error {
	body, err := json.Marshal(webhookPayload{
		Type:       "insider_trading",
		Ticker:     f.Ticker,
		Company:    f.CompanyName,
		FilingDate: f.FilingDate,
		URL:        f.URL,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := w.hc.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("webhook status %d", res.StatusCode)
	}
	return nil
}
