package edgar

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"insiderwatch/internal/domain"
)

// ScreenerSource scrapes an insider-trading screener page that renders its
// results as a plain HTML table. It is a best-effort alternate to the EDGAR
// feed behind the same Source interface: there are no accession numbers and
// no completeness guarantees, so it is only used when asked for explicitly.
type ScreenerSource struct {
	URL       string
	UserAgent string
	Limit     int

	hc *http.Client
}

func NewScreenerSource(pageURL, userAgent string) *ScreenerSource {
	return &ScreenerSource{
		URL:       pageURL,
		UserAgent: userAgent,
		Limit:     20,
		hc:        &http.Client{Timeout: fetchTimeout},
	}
}

func (s *ScreenerSource) Name() string { return "screener" }

func (s *ScreenerSource) Fetch(ctx context.Context) ([]domain.Filing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	req.Header.Set("User-Agent", s.UserAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &FetchError{URL: s.URL, Status: res.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse screener page: %w", err)
	}

	var filings []domain.Filing
	doc.Find("table tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if s.Limit > 0 && len(filings) >= s.Limit {
			return false
		}

		cols := row.Find("td")
		ticker := strings.ToUpper(cleanText(cols.Eq(0).Text()))
		company := cleanText(cols.Eq(1).Text())
		insider := cleanText(cols.Eq(2).Text())
		transaction := cleanText(cols.Eq(3).Text())
		shares := cleanText(cols.Eq(4).Text())
		price := cleanText(cols.Eq(5).Text())
		date := cleanText(cols.Eq(6).Text())

		id := screenerID(ticker, insider, transaction, date)
		if id == "" {
			return true
		}

		summary := cleanText(fmt.Sprintf("%s %s %s shares at %s", insider, transaction, shares, price))

		filings = append(filings, domain.Filing{
			ID:          id,
			Ticker:      ticker,
			CompanyName: company,
			FilingDate:  date,
			URL:         s.URL,
			Summary:     summary,
		})
		return true
	})
	return filings, nil
}

// screenerID derives a stable dedup key from the row contents. Rows with
// nothing identifying are skipped upstream of the seen set.
func screenerID(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) < 2 {
		return ""
	}
	return "screener:" + strings.Join(kept, "|")
}
