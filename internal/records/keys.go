package records

import "sync"

const (
	fileListKeyPrefix = "files_"
	profileKeyPrefix  = "profile_"
)

// FileListKey is the namespaced store key holding a user's file list.
func FileListKey(userID string) string {
	return fileListKeyPrefix + userID
}

// ProfileKey is the namespaced store key holding a user's profile record.
func ProfileKey(userID string) string {
	return profileKeyPrefix + userID
}

// userLocks serializes mutations per user so every change is an atomic
// read-modify-write against the store, never against a stale snapshot.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) forUser(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}
