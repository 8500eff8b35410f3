package kvstore

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store used by tests. It serializes through JSON so
// quota and corrupt-record behavior match the file-backed store.
type MemStore struct {
	quota int64

	mu      sync.Mutex
	records map[string][]byte
}

func NewMemStore(quotaBytes int64) *MemStore {
	return &MemStore{
		quota:   quotaBytes,
		records: make(map[string][]byte),
	}
}

func (s *MemStore) Read(key string, out any) (bool, error) {
	s.mu.Lock()
	data, ok := s.records[key]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorruptRecord, key, err)
	}

	return true, nil
}

func (s *MemStore) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize record %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		total := int64(len(data))
		for k, stored := range s.records {
			if k != key {
				total += int64(len(stored))
			}
		}
		if total > s.quota {
			return fmt.Errorf("%w: key %q needs %d bytes, quota is %d", ErrQuotaExceeded, key, len(data), s.quota)
		}
	}

	s.records[key] = data

	return nil
}

func (s *MemStore) Close() error {
	return nil
}

// WriteRaw stores bytes verbatim, bypassing serialization. Tests use it to
// plant corrupt records.
func (s *MemStore) WriteRaw(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = data
}
