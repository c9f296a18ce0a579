package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything a careful
// operator should hear about before the first cycle runs.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Watchlist = normalizeTickers(out.Watchlist)

	if out.Polling.IntervalMinutes < 1 {
		res.addErr("polling.interval_minutes must be >= 1 (got %d)", out.Polling.IntervalMinutes)
	}
	if out.SEC.FeedCount <= 0 {
		out.SEC.FeedCount = Default().SEC.FeedCount
	}
	if strings.TrimSpace(out.SEC.Contact) == "" {
		res.addErr("sec.contact is required: EDGAR rejects requests without an identifying User-Agent (set sec.contact or SEC_CONTACT)")
	}
	if strings.TrimSpace(out.Sinks.Webhook.URL) == "" {
		out.Sinks.Webhook.URL = DefaultWebhookURL
		res.addWarn("sinks.webhook.url is empty; falling back to %s", DefaultWebhookURL)
	}
	if out.Sinks.Email.Enabled {
		if strings.TrimSpace(out.Sinks.Email.SMTPHost) == "" {
			res.addErr("sinks.email.smtp_host is required when email is enabled")
		}
		if strings.TrimSpace(out.Sinks.Email.To) == "" {
			res.addErr("sinks.email.to is required when email is enabled")
		}
	}
	if len(out.Watchlist) > 1 {
		res.addWarn("watchlist has %d tickers but only the first (%s) is fetched each cycle; the EDGAR company feed takes a single CIK", len(out.Watchlist), out.Watchlist[0])
	}

	return out, res
}

func normalizeTickers(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.ToUpper(strings.TrimSpace(x))
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		ys = append(ys, x)
	}
	return ys
}
