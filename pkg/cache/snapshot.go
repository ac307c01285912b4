package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/osint-surface/pkg/logging"
	"github.com/user/osint-surface/pkg/recon"
)

const DefaultSnapshotPath = ".osint-surface-cache.json"

// entry is one persisted snapshot slot. Unknown extra fields in the file
// are ignored on load so the store stays forward-readable.
type entry struct {
	Timestamp time.Time        `json:"timestamp"`
	Result    recon.ScanResult `json:"result"`
}

// Store is a file-backed key-value snapshot store holding the last
// successful scan per organization|domain key. One entry per key, no
// eviction. The file is the only shared mutable resource; the mutex keeps
// read-modify-write exclusive for the duration of a write.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	if path == "" {
		path = DefaultSnapshotPath
	}
	return &Store{path: path}
}

// Write replaces the entry for key. The file is written to a temp sibling
// and renamed over the old one so a reader never observes a half-written
// store.
func (s *Store) Write(key string, result recon.ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.loadFile()
	entries[key] = entry{Timestamp: result.Timestamp, Result: result}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Read returns the stored result for key with provenance set to cached.
// Staleness is a display concern; entries never expire here.
func (s *Store) Read(key string) (recon.ScanResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.loadFile()[key]
	if !ok {
		return recon.ScanResult{}, false
	}
	result := e.Result
	result.Provenance = recon.ProvenanceCached
	if result.Timestamp.IsZero() {
		result.Timestamp = e.Timestamp
	}
	return result, true
}

// loadFile reads the whole store. A missing, unreadable or malformed file
// is treated as an empty store: recon degrades, it does not crash.
func (s *Store) loadFile() map[string]entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]entry{}
	}
	var entries map[string]entry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		logging.Debugf("snapshot store at %s unreadable, treating as empty: %v", s.path, err)
		return map[string]entry{}
	}
	return entries
}
