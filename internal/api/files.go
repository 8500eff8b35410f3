package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/webdrive/webdrive_api/internal/api/dto"
	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/models"
	"github.com/webdrive/webdrive_api/internal/utils"
)

const uploadFieldName = "file"

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	list, err := s.files.List(r.Context(), session.UserID)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	total := len(list)

	// Unpaginated by default: the whole list in insertion order.
	offset := utils.GetQueryParam(r, offsetQueryKey, 0)
	limit := utils.GetQueryParam(r, limitQueryKey, 0)
	if offset > len(list) {
		offset = len(list)
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}

	s.WriteResponse(w, r, http.StatusOK, dto.NewListFilesResponse(list, total))
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrBadRequest("missing file in request", err.Error(),
			map[string]any{"field": uploadFieldName}))
		return
	}
	defer func() { _ = file.Close() }()

	upload := models.Upload{
		Name:  header.Filename,
		Size:  header.Size,
		Type:  header.Header.Get("Content-Type"),
		Entry: file,
	}

	record, err := s.files.Add(r.Context(), session.UserID, upload)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusCreated, dto.NewFileResponse(*record))
}

func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	fileID, err := uuid.Parse(mux.Vars(r)[fileIDTag])
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrBadRequest("invalid file id", err.Error(), nil))
		return
	}

	record, err := s.files.Get(r.Context(), session.UserID, fileID)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusOK, dto.NewFileDownloadResponse(*record))
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		s.WriteError(w, r, errlocal.NewErrUnauthorized("no session", "", nil))
		return
	}

	fileID, err := uuid.Parse(mux.Vars(r)[fileIDTag])
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrBadRequest("invalid file id", err.Error(), nil))
		return
	}

	if err := s.files.Delete(r.Context(), session.UserID, fileID); err != nil {
		s.WriteError(w, r, err)
		return
	}

	s.WriteResponse(w, r, http.StatusNoContent, nil)
}
