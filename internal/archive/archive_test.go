package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insiderwatch/internal/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertFilingIgnoresDuplicates(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	f := domain.Filing{
		ID:              "0001234-25-000001",
		AccessionNumber: "0001234-25-000001",
		Ticker:          "ACME",
		CompanyName:     "ACME CORP",
		FilingDate:      "2025-08-28",
	}
	require.NoError(t, s.InsertFiling(ctx, f))
	require.NoError(t, s.InsertFiling(ctx, f))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalFilings)
	assert.Equal(t, 1, st.Last24h)
}

func TestStatsTopTickers(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i, tick := range []string{"ACME", "ACME", "WIDG", ""} {
		f := domain.Filing{
			ID:     string(rune('a' + i)),
			Ticker: tick,
		}
		require.NoError(t, s.InsertFiling(ctx, f))
	}

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.TotalFilings)

	require.Len(t, st.TopTickers, 2, "blank tickers are excluded")
	assert.Equal(t, TickerCount{Ticker: "ACME", Count: 2}, st.TopTickers[0])
	assert.Equal(t, TickerCount{Ticker: "WIDG", Count: 1}, st.TopTickers[1])
}

func TestStatsEmptyDatabase(t *testing.T) {
	s := openStore(t)

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.TotalFilings)
	assert.Zero(t, st.Last24h)
	assert.Empty(t, st.TopTickers)
}
