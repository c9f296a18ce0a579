package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound reports a ticker with no CIK mapping.
var ErrNotFound = errors.New("edgar: ticker not found")

// Resolver maps ticker symbols to zero-padded CIK strings, backed by the
// SEC's bulk company_tickers.json document. The whole index is loaded on
// the first Resolve call and never updated afterwards; a failed load
// leaves it empty so the next miss retries the download.
type Resolver struct {
	client *Client

	mu    sync.Mutex
	index map[string]string // upper ticker -> 10-digit CIK
}

func NewResolver(c *Client) *Resolver {
	return &Resolver{client: c}
}

// Resolve is case-insensitive: resolve("aapl") == resolve("AAPL").
func (r *Resolver) Resolve(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		if err := r.loadLocked(ctx); err != nil {
			return "", fmt.Errorf("load ticker index: %w", err)
		}
	}

	cik, ok := r.index[ticker]
	if !ok {
		return "", ErrNotFound
	}
	return cik, nil
}

func (r *Resolver) loadLocked(ctx context.Context) error {
	b, err := r.client.fetchTickerFile(ctx)
	if err != nil {
		return err
	}

	// {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}
	var rows map[string]struct {
		CIK    int64  `json:"cik_str"`
		Ticker string `json:"ticker"`
	}
	if err := json.Unmarshal(b, &rows); err != nil {
		return fmt.Errorf("decode ticker file: %w", err)
	}

	idx := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Ticker == "" {
			continue
		}
		idx[strings.ToUpper(row.Ticker)] = fmt.Sprintf("%010d", row.CIK)
	}
	if len(idx) == 0 {
		return errors.New("edgar: ticker index came back empty")
	}

	r.index = idx
	return nil
}
