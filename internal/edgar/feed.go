package edgar

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"insiderwatch/internal/domain"
)

var tickerRe = regexp.MustCompile(`(?i)Ticker:\s*([A-Za-z]{1,5})`)

// ParseFeed extracts filings from raw Atom markup. Every field is
// independently optional: a missing tag yields an empty string, not a
// dropped record. The one exception is the dedup id; entries with no
// accession number and no link are discarded here so nothing id-less
// reaches the seen set. Parsing the same bytes twice yields identical
// output.
func ParseFeed(raw []byte) ([]domain.Filing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var filings []domain.Filing
	doc.Find("entry").Each(func(_ int, e *goquery.Selection) {
		link, _ := e.Find("link").First().Attr("href")
		link = strings.TrimSpace(link)

		acc := cleanText(e.Find("accession-number").First().Text())
		if acc == "" {
			acc = accessionFromLink(link)
		}

		id := acc
		if id == "" {
			id = link
		}
		if id == "" {
			return
		}

		date := cleanText(e.Find("filing-date").First().Text())
		if date == "" {
			date = cleanText(e.Find("updated").First().Text())
		}

		company := cleanText(e.Find("company-name").First().Text())
		if company == "" {
			company = cleanText(e.Find("company-info conformed-name").First().Text())
		}

		filings = append(filings, domain.Filing{
			ID:              id,
			AccessionNumber: acc,
			Ticker:          extractTicker(e.Text()),
			CompanyName:     company,
			CIK:             PadCIK(cleanText(e.Find("cik").First().Text())),
			FilingDate:      date,
			URL:             link,
			Summary:         cleanText(e.Find("summary").First().Text()),
		})
	})
	return filings, nil
}

func extractTicker(s string) string {
	m := tickerRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

func accessionFromLink(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("accession_number")
}

// PadCIK left-pads a numeric CIK to the 10-digit form EDGAR uses.
// Non-numeric or empty input is returned unchanged.
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if cik == "" || len(cik) >= 10 {
		return cik
	}
	for _, r := range cik {
		if r < '0' || r > '9' {
			return cik
		}
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
