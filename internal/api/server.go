package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/webdrive/webdrive_api/internal/auth"
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/identity"
	"github.com/webdrive/webdrive_api/internal/logging"
	"github.com/webdrive/webdrive_api/internal/records"
)

const (
	defaultTimeout = time.Second * 30
	apiPrefix      = "/api/v1"
)

type Server struct {
	s           *http.Server
	router      *mux.Router
	files       records.FileManager
	profiles    records.ProfileManager
	provider    identity.Provider
	authManager auth.AuthManager
	logger      *logging.Logger
	healthy     bool
}

func NewServer(
	cfg config.Config,
	files records.FileManager,
	profiles records.ProfileManager,
	provider identity.Provider,
	authManager auth.AuthManager,
	logger *logging.Logger,
) *Server {
	r := mux.NewRouter()

	return &Server{
		s: &http.Server{
			Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:      r,
			WriteTimeout: defaultTimeout,
			ReadTimeout:  defaultTimeout,
		},
		router:      r,
		files:       files,
		profiles:    profiles,
		provider:    provider,
		authManager: authManager,
		logger:      logger.WithApiTag(),
	}
}

func (s *Server) InitRouter() *mux.Router {
	s.initRouter()
	return s.router
}

func (s *Server) Start() error {
	s.logger.Infof("starting server at %s", s.s.Addr)
	s.initRouter()
	s.healthy = true

	return s.s.ListenAndServe()
}

func (s *Server) Shutdown() error {
	s.logger.Infof("shutting down server at %s", s.s.Addr)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.healthy = false

	if err := s.s.Shutdown(ctx); err != nil {
		s.logger.Warnf("graceful shutdown failed, forcing close: %v", err)
		return s.s.Close()
	}

	return nil
}

func (s *Server) WriteResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		s.logger.WithContext(r.Context()).WithField("status", status).Info("request processed")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		data = map[string]string{"status": http.StatusText(status)}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		s.WriteError(w, r, errlocal.NewErrInternal("failed to encode response", err.Error(), nil))
		return
	}

	s.logger.WithContext(r.Context()).WithField("status", status).Info("request processed")
}

func (s *Server) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	var errLocal errlocal.LocalError
	if !errors.As(err, &errLocal) {
		w.WriteHeader(http.StatusInternalServerError)
	} else {
		w.WriteHeader(errLocal.Code())
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if encodeErr := encoder.Encode(err); encodeErr != nil {
		http.Error(w, `{"message":"failed to encode error response"}`, http.StatusInternalServerError)
		return
	}

	s.logger.WithContext(r.Context()).WithError(err).Error("request processed with error")
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.WriteResponse(w, r, http.StatusOK, s.healthy)
}
