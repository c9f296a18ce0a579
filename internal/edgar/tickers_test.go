package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickerFile = `{
  "0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
  "1": {"cik_str": 789019, "ticker": "MSFT", "title": "Microsoft Corp"},
  "2": {"cik_str": 1652044, "ticker": "googl", "title": "Alphabet Inc."}
}`

func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("insiderwatch test (test@example.com)")
	require.NoError(t, err)
	c.tickersFile = srv.URL

	return NewResolver(c)
}

func TestResolveNormalizesCase(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(tickerFile))
	})

	lower, err := r.Resolve(context.Background(), "aapl")
	require.NoError(t, err)
	upper, err := r.Resolve(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "0000320193", lower)
	assert.Equal(t, upper, lower)

	// index keys are upper-cased even when the source file is not
	got, err := r.Resolve(context.Background(), "GOOGL")
	require.NoError(t, err)
	assert.Equal(t, "0001652044", got)
}

func TestResolveUnknownTicker(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(tickerFile))
	})

	_, err := r.Resolve(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveLoadsIndexOnce(t *testing.T) {
	var hits atomic.Int32
	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(tickerFile))
	})

	for _, tick := range []string{"AAPL", "MSFT", "AAPL", "NOPE"} {
		_, _ = r.Resolve(context.Background(), tick)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestResolveRetriesAfterFailedLoad(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)

	r := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(tickerFile))
	})

	_, err := r.Resolve(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "a load failure is not a plain miss")

	// the cache stayed empty, so the next miss retries the download
	fail.Store(false)
	cik, err := r.Resolve(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)
}
