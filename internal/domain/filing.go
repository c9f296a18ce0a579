package domain

// Filing is one Form 4 disclosure event pulled from the EDGAR feed.
// Records are read-only after the parser builds them; only the ID is
// persisted (in the seen set and, optionally, the archive).
type Filing struct {
	ID              string // dedup key: accession number, else derived from the link
	AccessionNumber string
	Ticker          string // may be empty if extraction failed
	CompanyName     string
	CIK             string // zero-padded 10-digit string
	FilingDate      string // YYYY-MM-DD as published by the feed
	URL             string
	Summary         string
}
