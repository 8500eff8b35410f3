package records

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/kvstore"
	"github.com/webdrive/webdrive_api/internal/logging"
	"github.com/webdrive/webdrive_api/internal/models"
)

// FileManager is CRUD over the ordered list of file records for one user.
// The list lives under a single namespaced key and is rewritten in full on
// every mutation.
type FileManager interface {
	List(ctx context.Context, userID string) ([]models.FileRecord, error)
	Add(ctx context.Context, userID string, upload models.Upload) (*models.FileRecord, error)
	Get(ctx context.Context, userID string, fileID uuid.UUID) (*models.FileRecord, error)
	Delete(ctx context.Context, userID string, fileID uuid.UUID) error
}

type fileManager struct {
	store    kvstore.Store
	maxBytes int64
	locks    *userLocks
	logger   *logging.Logger
}

func NewFileManager(cfg config.Config, store kvstore.Store, logger *logging.Logger) FileManager {
	return &fileManager{
		store:    store,
		maxBytes: cfg.Upload.MaxFileSizeBytes,
		locks:    newUserLocks(),
		logger:   logger.WithRecordsTag(),
	}
}

func (m *fileManager) List(_ context.Context, userID string) ([]models.FileRecord, error) {
	return m.loadList(userID)
}

func (m *fileManager) Add(_ context.Context, userID string, upload models.Upload) (*models.FileRecord, error) {
	if upload.Size > m.maxBytes {
		return nil, errlocal.NewErrTooLarge("file exceeds the upload size limit", "records",
			map[string]any{"size": upload.Size, "limit": m.maxBytes})
	}

	data, err := io.ReadAll(io.LimitReader(upload.Entry, m.maxBytes+1))
	if err != nil {
		return nil, errlocal.NewErrBadRequest("failed to read file content", err.Error(),
			map[string]any{"name": upload.Name})
	}
	if int64(len(data)) > m.maxBytes {
		return nil, errlocal.NewErrTooLarge("file exceeds the upload size limit", "records",
			map[string]any{"limit": m.maxBytes})
	}

	record := models.FileRecord{
		ID:         uuid.New(),
		Name:       upload.Name,
		Data:       models.EncodeDataURI(upload.Type, data),
		Type:       upload.Type,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
		UploadedBy: userID,
	}

	lock := m.locks.forUser(userID)
	lock.Lock()
	defer lock.Unlock()

	list, err := m.loadList(userID)
	if err != nil {
		return nil, err
	}

	list = append(list, record)
	if err := m.persistList(userID, list); err != nil {
		return nil, err
	}

	m.logger.WithField("user_id", userID).WithField("file_id", record.ID).
		WithField("bytes", record.Size).Info("file record added")

	return &record, nil
}

func (m *fileManager) Get(_ context.Context, userID string, fileID uuid.UUID) (*models.FileRecord, error) {
	list, err := m.loadList(userID)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if list[i].ID == fileID {
			return &list[i], nil
		}
	}

	return nil, errlocal.NewErrNotFound("file not found", "records",
		map[string]any{"file_id": fileID.String()})
}

// Delete removes the record with the given id. A missing id is a no-op, not
// an error.
func (m *fileManager) Delete(_ context.Context, userID string, fileID uuid.UUID) error {
	lock := m.locks.forUser(userID)
	lock.Lock()
	defer lock.Unlock()

	list, err := m.loadList(userID)
	if err != nil {
		return err
	}

	kept := list[:0]
	for _, record := range list {
		if record.ID != fileID {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(list) {
		return nil
	}

	if err := m.persistList(userID, kept); err != nil {
		return err
	}

	m.logger.WithField("user_id", userID).WithField("file_id", fileID).Info("file record deleted")

	return nil
}

// loadList degrades a corrupt stored list to an empty one instead of failing
// every later operation for the user.
func (m *fileManager) loadList(userID string) ([]models.FileRecord, error) {
	var list []models.FileRecord
	_, err := m.store.Read(FileListKey(userID), &list)
	if err != nil {
		if errors.Is(err, kvstore.ErrCorruptRecord) {
			m.logger.WithField("user_id", userID).WithError(err).Warn("corrupt file list, treating as empty")
			return []models.FileRecord{}, nil
		}
		return nil, errlocal.NewErrInternal("failed to load file list", err.Error(),
			map[string]any{"user_id": userID})
	}
	if list == nil {
		list = []models.FileRecord{}
	}
	return list, nil
}

func (m *fileManager) persistList(userID string, list []models.FileRecord) error {
	if err := m.store.Write(FileListKey(userID), list); err != nil {
		if errors.Is(err, kvstore.ErrQuotaExceeded) {
			return errlocal.NewErrStorageFull("storage quota exceeded", err.Error(),
				map[string]any{"user_id": userID})
		}
		return errlocal.NewErrInternal("failed to persist file list", err.Error(),
			map[string]any{"user_id": userID})
	}
	return nil
}
