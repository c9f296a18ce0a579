package edgar

import (
	"fmt"
	"net/url"
)

// Target selects which Form 4 feed a cycle fetches: the global
// most-recent-filings feed, or the feed of a single company.
//
// The company feed takes exactly one CIK, so a watchlist with several
// tickers is served by its first entry only. That limitation is inherited
// from the feed, not hidden: callers log it when it applies.
type Target struct {
	cik   string // empty selects the global feed
	count int
}

func Current(count int) Target {
	return Target{count: count}
}

func Company(cik string, count int) Target {
	return Target{cik: cik, count: count}
}

func (t Target) Query() url.Values {
	q := url.Values{}
	if t.cik == "" {
		q.Set("action", "getcurrent")
	} else {
		q.Set("action", "getcompany")
		q.Set("CIK", t.cik)
	}
	q.Set("type", "4")
	q.Set("count", fmt.Sprint(t.count))
	q.Set("owner", "only")
	q.Set("output", "atom")
	return q
}
