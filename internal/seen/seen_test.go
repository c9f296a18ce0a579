package seen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_filings.json")

	s, err := Open(path)
	require.NoError(t, err)

	assert.False(t, s.IsSeen("0001234-25-000001"))
	s.MarkSeen("0001234-25-000001")
	s.MarkSeen("0009999-25-000042")
	assert.True(t, s.IsSeen("0001234-25-000001"))
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Persist())
	require.NoError(t, s.Close())

	// a fresh open reads membership back from disk
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	assert.True(t, s2.IsSeen("0001234-25-000001"))
	assert.True(t, s2.IsSeen("0009999-25-000042"))
	assert.Equal(t, 2, s2.Len())
}

func TestStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_filings.json")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	s.MarkSeen("b")
	s.MarkSeen("a")
	require.NoError(t, s.Persist())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var ids []string
	require.NoError(t, json.Unmarshal(data, &ids), "file must stay a plain JSON string array")
	assert.Equal(t, []string{"a", "b"}, ids, "ids are written sorted")
}

func TestMarkSeenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_filings.json")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	s.MarkSeen("x")
	s.MarkSeen("x")
	s.MarkSeen("")
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.IsSeen(""))
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_filings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 0, s.Len())

	// persisting repairs the file in place
	s.MarkSeen("y")
	require.NoError(t, s.Persist())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["y"]`, string(data))
}

func TestOpenRefusesSecondInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_filings.json")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked by another process")
}
