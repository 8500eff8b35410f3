package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

const (
	fileIDTag    = "file_id"
	linkFieldTag = "field"

	offsetQueryKey = "offset"
	limitQueryKey  = "limit"
)

func (s *Server) initRouter() {
	root := s.router.PathPrefix(apiPrefix).Subrouter().StrictSlash(true)
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "endpoint not found", http.StatusNotFound)
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	root.Use(mux.CORSMethodMiddleware(root), s.commonMiddleware)
	root.HandleFunc("/health", s.healthCheck).Methods(http.MethodGet)
	root.HandleFunc("/login", s.login).Methods(http.MethodPost)

	userRouter := root.PathPrefix("/users/me").Subrouter()
	userRouter.Use(s.authMiddleware)
	userRouter.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	userRouter.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet)
	userRouter.HandleFunc("/profile", s.updateProfile).Methods(http.MethodPut)
	userRouter.HandleFunc("/profile", s.setProfileField).Methods(http.MethodPatch)
	userRouter.HandleFunc(fmt.Sprintf("/profile/links/{%s}", linkFieldTag), s.linkField).Methods(http.MethodPost)
	userRouter.HandleFunc(fmt.Sprintf("/profile/links/{%s}", linkFieldTag), s.unlinkField).Methods(http.MethodDelete)

	fileRouter := root.PathPrefix("/files").Subrouter()
	fileRouter.Use(s.authMiddleware)
	fileRouter.HandleFunc("", s.listFiles).Methods(http.MethodGet)
	fileRouter.HandleFunc("", s.uploadFile).Methods(http.MethodPost)
	fileRouter.HandleFunc(fmt.Sprintf("/{%s}", fileIDTag), s.downloadFile).Methods(http.MethodGet)
	fileRouter.HandleFunc(fmt.Sprintf("/{%s}", fileIDTag), s.deleteFile).Methods(http.MethodDelete)
}
