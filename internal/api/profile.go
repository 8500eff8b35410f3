package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/webdrive/webdrive_api/internal/api/dto"
	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/models"
	"github.com/webdrive/webdrive_api/internal/records"
)

// Link path segments accepted by the link/unlink endpoints, mapped onto
// profile field names.
var linkableFields = map[string]string{
	"email":  records.FieldEmail,
	"wallet": records.FieldWallet,
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	profile, err := s.profiles.Load(r.Context(), session.UserID, s.identityDefaults(r.Context(), session.UserID))
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusOK, dto.ProfileResponse(profile))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	body, err := dto.GetRequestBody[dto.UpdateProfileRequest](r)
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrBadRequest("invalid request body", err.Error(), nil))
		return
	}

	profile := body.ToModel()
	if err := s.profiles.Save(r.Context(), session.UserID, profile); err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusOK, dto.ProfileResponse(profile))
}

func (s *Server) setProfileField(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	body, err := dto.GetRequestBody[dto.SetProfileFieldRequest](r)
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrBadRequest("invalid request body", err.Error(), nil))
		return
	}

	profile, err := s.profiles.SetField(r.Context(), session.UserID,
		s.identityDefaults(r.Context(), session.UserID), body.Field, body.Value)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusOK, dto.ProfileResponse(profile))
}

// linkField asks the provider to link a contact, then persists the linked
// address through the manager's read-modify-write. The persisted value is the
// provider's answer, never a stale in-memory copy.
func (s *Server) linkField(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	field, ok := linkableFields[mux.Vars(r)[linkFieldTag]]
	if !ok {
		s.WriteError(w, r, errlocal.NewErrBadRequest("unknown link field", "",
			map[string]any{"field": mux.Vars(r)[linkFieldTag]}))
		return
	}

	var address string
	var err error
	switch field {
	case records.FieldEmail:
		address, err = s.provider.LinkEmail(r.Context(), session.UserID)
	case records.FieldWallet:
		address, err = s.provider.LinkWallet(r.Context(), session.UserID)
	}
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	profile, err := s.profiles.SetField(r.Context(), session.UserID,
		s.identityDefaults(r.Context(), session.UserID), field, address)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusOK, dto.ProfileResponse(profile))
}

func (s *Server) unlinkField(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	field, ok := linkableFields[mux.Vars(r)[linkFieldTag]]
	if !ok {
		s.WriteError(w, r, errlocal.NewErrBadRequest("unknown link field", "",
			map[string]any{"field": mux.Vars(r)[linkFieldTag]}))
		return
	}

	profile, err := s.profiles.UnlinkField(r.Context(), session.UserID,
		s.identityDefaults(r.Context(), session.UserID), field)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusOK, dto.ProfileResponse(profile))
}

// identityDefaults fetches provider-supplied profile fields to back a user
// with no stored record. Provider trouble here only costs the defaults, not
// the request.
func (s *Server) identityDefaults(ctx context.Context, userID string) models.Profile {
	user, err := s.provider.User(ctx, userID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("failed to fetch identity defaults")
		return models.Profile{}
	}

	return user.ProfileDefaults()
}
