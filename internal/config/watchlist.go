package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadWatchlist reads a newline-delimited ticker file. Blank lines and
// lines starting with # are ignored; tickers are upper-cased and deduped.
func LoadWatchlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	var tickers []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tickers = append(tickers, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return normalizeTickers(tickers), nil
}
