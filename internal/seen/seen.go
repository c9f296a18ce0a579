// Package seen holds the durable dedup ledger of filing ids already
// handed to the dispatcher.
package seen

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/gofrs/flock"
)

// Store keeps the set of seen filing ids in memory and mirrors it to a
// JSON string-array file. Membership only grows for the life of the file.
// The on-disk format stays wire-compatible with the seen_filings.json the
// original scraper wrote.
type Store struct {
	path string
	lock *flock.Flock

	mu  sync.Mutex
	ids map[string]struct{}
}

// Open locks the store against a second process instance and loads the
// current membership. A missing or corrupt file starts the set empty;
// only a lock conflict is an error.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		lock: flock.New(path + ".lock"),
		ids:  make(map[string]struct{}),
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock seen store: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("seen store %s is locked by another process", path)
	}

	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[seen] read %s: %v (starting empty)", s.path, err)
		}
		return
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("[seen] corrupt store %s: %v (starting empty)", s.path, err)
		return
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	log.Printf("[seen] loaded %d seen filings", len(s.ids))
}

func (s *Store) IsSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// MarkSeen is idempotent. The in-memory set reflects the id before this
// returns, so a concurrent IsSeen in the same process never races the
// durable write.
func (s *Store) MarkSeen(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.ids[id] = struct{}{}
	s.mu.Unlock()
}

// Persist writes the full membership to disk via rename. A failure leaves
// the in-memory state authoritative for this process; the caller logs it
// as a durability risk rather than aborting.
func (s *Store) Persist() error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Strings(ids)
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal seen set: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write seen set: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace seen set: %w", err)
	}
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Store) Close() error {
	return s.lock.Unlock()
}
