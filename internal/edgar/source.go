package edgar

import (
	"context"
	"fmt"
	"log"

	"insiderwatch/internal/domain"
)

// Source is anything that can produce a batch of filings for one cycle.
// The EDGAR feed is the primary implementation; the screener scrape is a
// best-effort alternate behind the same interface.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Filing, error)
}

// FeedSource fetches and parses the Form 4 Atom feed. With a watchlist it
// resolves the first ticker and fetches that company's feed; otherwise it
// fetches the global recent-filings feed.
type FeedSource struct {
	Client   *Client
	Resolver *Resolver
	Tickers  []string
	Count    int
}

func (s *FeedSource) Name() string { return "edgar" }

func (s *FeedSource) Fetch(ctx context.Context) ([]domain.Filing, error) {
	target := Current(s.Count)

	if len(s.Tickers) > 0 {
		ticker := s.Tickers[0]
		if len(s.Tickers) > 1 {
			log.Printf("[edgar] watchlist has %d tickers; only %s is fetched this cycle", len(s.Tickers), ticker)
		}

		cik, err := s.Resolver.Resolve(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", ticker, err)
		}
		target = Company(cik, s.Count)
	}

	raw, err := s.Client.FetchFeed(ctx, target)
	if err != nil {
		return nil, err
	}
	return ParseFeed(raw)
}
