package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/logging"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestFileStore(t *testing.T, quota int64) (Store, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Config{
		Log:   config.LogConfig{Level: "error", Format: "text"},
		Store: config.StoreConfig{Path: dir, QuotaBytes: quota},
	}

	store, err := NewFileStore(cfg, logging.NewLogger(cfg))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, dir
}

func testStores(t *testing.T, quota int64) map[string]Store {
	fileStore, _ := newTestFileStore(t, quota)
	return map[string]Store{
		"file":   fileStore,
		"memory": NewMemStore(quota),
	}
}

func TestStore_ReadMissingKey(t *testing.T) {
	for name, store := range testStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			var out testRecord
			found, err := store.Read("files_nobody", &out)
			assert.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	for name, store := range testStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			in := testRecord{Name: "a.txt", Count: 3}
			require.NoError(t, store.Write("files_user1", in))

			var out testRecord
			found, err := store.Read("files_user1", &out)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, in, out)
		})
	}
}

func TestStore_WriteOverwrites(t *testing.T) {
	for name, store := range testStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Write("k", testRecord{Name: "first"}))
			require.NoError(t, store.Write("k", testRecord{Name: "second"}))

			var out testRecord
			found, err := store.Read("k", &out)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "second", out.Name)
		})
	}
}

func TestStore_QuotaExceeded(t *testing.T) {
	for name, store := range testStores(t, 64) {
		t.Run(name, func(t *testing.T) {
			small := testRecord{Name: "ok"}
			require.NoError(t, store.Write("k", small))

			big := testRecord{Name: string(make([]byte, 256))}
			err := store.Write("k2", big)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrQuotaExceeded)

			// The failed write left no partial state behind.
			var out testRecord
			found, err := store.Read("k2", &out)
			assert.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStore_QuotaCountsReplacedValueOnce(t *testing.T) {
	for name, store := range testStores(t, 128) {
		t.Run(name, func(t *testing.T) {
			v := testRecord{Name: "0123456789012345678901234567890123456789"}
			require.NoError(t, store.Write("k", v))
			// Rewriting the same key at the same size must not double-count.
			require.NoError(t, store.Write("k", v))
		})
	}
}

func TestMemStore_CorruptRecord(t *testing.T) {
	store := NewMemStore(0)
	store.WriteRaw("profile_u", []byte("{not json"))

	var out testRecord
	_, err := store.Read("profile_u", &out)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestFileStore_CorruptRecord(t *testing.T) {
	store, dir := newTestFileStore(t, 0)

	require.NoError(t, store.Write("profile_u", testRecord{Name: "fine"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{not json"), 0o644))

	var out testRecord
	_, err = store.Read("profile_u", &out)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Log:   config.LogConfig{Level: "error", Format: "text"},
		Store: config.StoreConfig{Path: dir, QuotaBytes: 0},
	}
	logger := logging.NewLogger(cfg)

	store, err := NewFileStore(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, store.Write("files_did:privy:abc123", testRecord{Name: "kept"}))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(cfg, logger)
	require.NoError(t, err)

	var out testRecord
	found, err := reopened.Read("files_did:privy:abc123", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "kept", out.Name)
}
