package edgar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const screenerPage = `<html><body>
<table>
  <thead><tr><th>Ticker</th><th>Company</th><th>Insider</th><th>Type</th><th>Shares</th><th>Price</th><th>Date</th></tr></thead>
  <tbody>
    <tr>
      <td>acme</td><td>Acme Corp</td><td>J. Doe</td><td>Buy</td>
      <td>10,000</td><td>$12.34</td><td>2025-08-28</td>
    </tr>
    <tr>
      <td></td><td></td><td></td><td></td><td></td><td></td><td></td>
    </tr>
    <tr>
      <td>WIDG</td><td>Widget Inc</td><td>A. Smith</td><td>Sell</td>
      <td>500</td><td>$3.21</td><td>2025-08-27</td>
    </tr>
  </tbody>
</table>
</body></html>`

func TestScreenerFetchParsesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(screenerPage))
	}))
	defer srv.Close()

	s := NewScreenerSource(srv.URL, "insiderwatch test")
	filings, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, filings, 2, "the all-empty row must be skipped")

	f := filings[0]
	assert.Equal(t, "ACME", f.Ticker)
	assert.Equal(t, "Acme Corp", f.CompanyName)
	assert.Equal(t, "2025-08-28", f.FilingDate)
	assert.Equal(t, srv.URL, f.URL)
	assert.Contains(t, f.Summary, "J. Doe")
	assert.Contains(t, f.Summary, "10,000 shares at $12.34")
	assert.True(t, strings.HasPrefix(f.ID, "screener:"), "id %q", f.ID)

	assert.NotEqual(t, f.ID, filings[1].ID)
}

func TestScreenerFetchHonorsLimit(t *testing.T) {
	var rows strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&rows, "<tr><td>T%02d</td><td>Co %d</td><td>Insider %d</td><td>Buy</td><td>1</td><td>$1</td><td>2025-08-28</td></tr>", i, i, i)
	}
	page := "<html><body><table><tbody>" + rows.String() + "</tbody></table></body></html>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewScreenerSource(srv.URL, "insiderwatch test")
	filings, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, filings, 20)
}

func TestScreenerFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewScreenerSource(srv.URL, "insiderwatch test")
	_, err := s.Fetch(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusBadGateway, fe.Status)
}

func TestScreenerID(t *testing.T) {
	assert.Equal(t, "screener:ACME|J. Doe|Buy|2025-08-28", screenerID("ACME", "J. Doe", "Buy", "2025-08-28"))
	assert.Equal(t, "screener:ACME|2025-08-28", screenerID("ACME", "", "", "2025-08-28"))
	assert.Empty(t, screenerID("ACME", "", "", ""), "a single field is not identifying")
	assert.Empty(t, screenerID("", "", "", ""))
}
