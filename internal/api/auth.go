package api

import (
	"net/http"

	"github.com/webdrive/webdrive_api/internal/api/dto"
	"github.com/webdrive/webdrive_api/internal/errlocal"
)

// login exchanges a provider auth code for a signed session token. The
// identity provider does the actual authentication; a session that comes back
// not ready or not authenticated never becomes a token.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body, err := dto.GetRequestBody[dto.LoginRequest](r)
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrBadRequest("invalid request body", err.Error(), nil))
		return
	}

	session, err := s.provider.Login(r.Context(), body.AuthCode)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	if !session.Ready || !session.Authenticated {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("login was not completed", "identity",
			map[string]any{"ready": session.Ready, "authenticated": session.Authenticated}))
		return
	}

	token, err := s.authManager.CreateSessionToken(session.User)
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrInternal("failed to create session token", err.Error(), nil))
		return
	}

	s.WriteResponse(w, r, http.StatusCreated, dto.NewLoginResponse(session.User, token))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	if err := s.provider.Logout(r.Context(), session.UserID); err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusNoContent, nil)
}
