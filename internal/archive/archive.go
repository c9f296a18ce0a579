// Package archive keeps a local sqlite record of every filing that was
// dispatched, purely for inspection and the --stats report. The seen set
// remains the sole dedup authority; losing the archive loses history, not
// correctness.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"insiderwatch/internal/domain"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS filings (
  id TEXT PRIMARY KEY,
  accession_number TEXT NOT NULL DEFAULT '',
  ticker TEXT NOT NULL DEFAULT '',
  company_name TEXT NOT NULL DEFAULT '',
  cik TEXT NOT NULL DEFAULT '',
  filing_date TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  summary TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_filings_ticker ON filings(ticker);
CREATE INDEX IF NOT EXISTS idx_filings_created_at ON filings(created_at DESC);
`)
	return err
}

func (s *Store) InsertFiling(ctx context.Context, f domain.Filing) error {
	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO filings (id, accession_number, ticker, company_name, cik, filing_date, url, summary)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		f.ID, f.AccessionNumber, f.Ticker, f.CompanyName, f.CIK, f.FilingDate, f.URL, f.Summary,
	)
	if err != nil {
		return fmt.Errorf("insert filing: %w", err)
	}
	return nil
}

type TickerCount struct {
	Ticker string
	Count  int
}

type Stats struct {
	TotalFilings int
	Last24h      int
	TopTickers   []TickerCount
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM filings;`).Scan(&st.TotalFilings); err != nil {
		return st, err
	}

	if err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM filings WHERE created_at > datetime('now', '-1 day');`).Scan(&st.Last24h); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT ticker, COUNT(*) AS n
FROM filings
WHERE ticker != ''
GROUP BY ticker
ORDER BY n DESC
LIMIT 10;`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var tc TickerCount
		if err := rows.Scan(&tc.Ticker, &tc.Count); err != nil {
			return st, err
		}
		st.TopTickers = append(st.TopTickers, tc)
	}
	return st, rows.Err()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
