package records

import (
	"context"
	"errors"

	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/kvstore"
	"github.com/webdrive/webdrive_api/internal/logging"
	"github.com/webdrive/webdrive_api/internal/models"
)

// Profile field names, as they appear in the persisted record.
const (
	FieldDisplayName = "displayName"
	FieldEmail       = "email"
	FieldWallet      = "walletAddress"
)

// ProfileManager is single-record CRUD for a user's profile. Field updates
// always re-read the stored record and persist the merged result, so a
// finished SetField is immediately visible to Load.
type ProfileManager interface {
	Load(ctx context.Context, userID string, defaults models.Profile) (models.Profile, error)
	Save(ctx context.Context, userID string, profile models.Profile) error
	SetField(ctx context.Context, userID string, defaults models.Profile, field, value string) (models.Profile, error)
	UnlinkField(ctx context.Context, userID string, defaults models.Profile, field string) (models.Profile, error)
}

type profileManager struct {
	store  kvstore.Store
	locks  *userLocks
	logger *logging.Logger
}

func NewProfileManager(store kvstore.Store, logger *logging.Logger) ProfileManager {
	return &profileManager{
		store:  store,
		locks:  newUserLocks(),
		logger: logger.WithRecordsTag(),
	}
}

// Load returns the stored profile, or one synthesized from the identity
// provider's defaults. The synthesized profile is not persisted until an
// explicit save.
func (m *profileManager) Load(_ context.Context, userID string, defaults models.Profile) (models.Profile, error) {
	return m.loadProfile(userID, defaults)
}

func (m *profileManager) Save(_ context.Context, userID string, profile models.Profile) error {
	lock := m.locks.forUser(userID)
	lock.Lock()
	defer lock.Unlock()

	return m.persistProfile(userID, profile)
}

func (m *profileManager) SetField(_ context.Context, userID string, defaults models.Profile, field, value string) (models.Profile, error) {
	lock := m.locks.forUser(userID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := m.loadProfile(userID, defaults)
	if err != nil {
		return models.Profile{}, err
	}

	switch field {
	case FieldDisplayName:
		profile.DisplayName = value
	case FieldEmail:
		profile.Email = value
	case FieldWallet:
		profile.WalletAddress = value
	default:
		return models.Profile{}, errlocal.NewErrBadRequest("unknown profile field", "records",
			map[string]any{"field": field})
	}

	if err := m.persistProfile(userID, profile); err != nil {
		return models.Profile{}, err
	}

	m.logger.WithField("user_id", userID).WithField("field", field).Info("profile field updated")

	return profile, nil
}

// UnlinkField clears a linked contact field. Only email and wallet can be
// unlinked.
func (m *profileManager) UnlinkField(ctx context.Context, userID string, defaults models.Profile, field string) (models.Profile, error) {
	if field != FieldEmail && field != FieldWallet {
		return models.Profile{}, errlocal.NewErrBadRequest("field cannot be unlinked", "records",
			map[string]any{"field": field})
	}

	return m.SetField(ctx, userID, defaults, field, "")
}

func (m *profileManager) loadProfile(userID string, defaults models.Profile) (models.Profile, error) {
	var profile models.Profile
	found, err := m.store.Read(ProfileKey(userID), &profile)
	if err != nil {
		if errors.Is(err, kvstore.ErrCorruptRecord) {
			m.logger.WithField("user_id", userID).WithError(err).Warn("corrupt profile, using defaults")
			return synthesize(defaults), nil
		}
		return models.Profile{}, errlocal.NewErrInternal("failed to load profile", err.Error(),
			map[string]any{"user_id": userID})
	}
	if !found {
		return synthesize(defaults), nil
	}
	return profile, nil
}

func (m *profileManager) persistProfile(userID string, profile models.Profile) error {
	if err := m.store.Write(ProfileKey(userID), profile); err != nil {
		if errors.Is(err, kvstore.ErrQuotaExceeded) {
			return errlocal.NewErrStorageFull("storage quota exceeded", err.Error(),
				map[string]any{"user_id": userID})
		}
		return errlocal.NewErrInternal("failed to persist profile", err.Error(),
			map[string]any{"user_id": userID})
	}
	return nil
}

func synthesize(defaults models.Profile) models.Profile {
	profile := defaults
	if profile.DisplayName == "" {
		profile.DisplayName = models.DefaultDisplayName
	}
	return profile
}
