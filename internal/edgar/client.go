package edgar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	browseURL  = "https://www.sec.gov/cgi-bin/browse-edgar"
	tickersURL = "https://www.sec.gov/files/company_tickers.json"

	fetchTimeout = 30 * time.Second
)

// ErrFetchTimeout reports a feed request that exceeded the fetch deadline.
var ErrFetchTimeout = errors.New("edgar: fetch timed out")

// FetchError is any transport or non-2xx failure talking to EDGAR.
// Callers treat it as "zero filings this cycle", not a fatal condition.
type FetchError struct {
	URL    string
	Status int // 0 for transport errors
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("edgar: %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("edgar: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to EDGAR. Every request carries the identifying User-Agent
// contact string required by the SEC's fair-access policy, and requests are
// rate-limited per host.
type Client struct {
	hc        *http.Client
	userAgent string
	limiter   *HostLimiter

	// overridable in tests
	browseBase  string
	tickersFile string
}

func NewClient(contact string) (*Client, error) {
	if strings.TrimSpace(contact) == "" {
		return nil, errors.New("edgar: contact string is required (EDGAR rejects anonymous clients)")
	}
	return &Client{
		hc:          &http.Client{Timeout: fetchTimeout},
		userAgent:   contact,
		limiter:     NewHostLimiter(5, 5),
		browseBase:  browseURL,
		tickersFile: tickersURL,
	}, nil
}

// FetchFeed retrieves the raw Atom feed for the target.
func (c *Client) FetchFeed(ctx context.Context, t Target) ([]byte, error) {
	return c.get(ctx, c.browseBase+"?"+t.Query().Encode(), "application/atom+xml")
}

func (c *Client) fetchTickerFile(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.tickersFile, "application/json")
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	if err := c.limiter.WaitURL(ctx, url); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	res, err := c.hc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrFetchTimeout, url)
		}
		return nil, &FetchError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &FetchError{URL: url, Status: res.StatusCode}
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return b, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
