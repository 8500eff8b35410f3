package kvstore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/logging"
)

const recordExt = ".json"

// fileStore keeps one JSON document per key in a data directory. Writes go
// through a temp file and rename, so a crashed write never leaves a record
// half-overwritten.
type fileStore struct {
	dir    string
	quota  int64
	logger *logging.Logger

	mu    sync.Mutex
	usage map[string]int64
}

func NewFileStore(cfg config.Config, logger *logging.Logger) (Store, error) {
	if err := os.MkdirAll(cfg.Store.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &fileStore{
		dir:    cfg.Store.Path,
		quota:  cfg.Store.QuotaBytes,
		logger: logger.WithStoreTag(),
		usage:  make(map[string]int64),
	}

	if err := s.scanUsage(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *fileStore) scanUsage() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to scan store directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}
		key, err := keyFromFilename(entry.Name())
		if err != nil {
			s.logger.WithField("file", entry.Name()).Warn("skipping unrecognized file in store directory")
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		s.usage[key] = info.Size()
	}

	return nil
}

func (s *fileStore) Read(key string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read record %q: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorruptRecord, key, err)
	}

	return true, nil
}

func (s *fileStore) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize record %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newSize := int64(len(data))
	if s.quota > 0 {
		total := newSize
		for k, size := range s.usage {
			if k != key {
				total += size
			}
		}
		if total > s.quota {
			return fmt.Errorf("%w: key %q needs %d bytes, quota is %d", ErrQuotaExceeded, key, newSize, s.quota)
		}
	}

	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, "record-*")
	if err != nil {
		return fmt.Errorf("failed to create temp record: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to persist record %q: %w", key, err)
	}

	s.usage[key] = newSize
	s.logger.WithField("key", key).WithField("bytes", newSize).Debug("record persisted")

	return nil
}

func (s *fileStore) Close() error {
	return nil
}

// Keys may contain characters unsafe for filenames (user ids are opaque
// provider strings), so the filename is the base64url form of the key.
func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+recordExt)
}

func keyFromFilename(name string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(name, recordExt))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
