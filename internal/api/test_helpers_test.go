package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/webdrive/webdrive_api/internal/auth"
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/identity"
	"github.com/webdrive/webdrive_api/internal/kvstore"
	"github.com/webdrive/webdrive_api/internal/logging"
	"github.com/webdrive/webdrive_api/internal/records"
	"github.com/webdrive/webdrive_api/internal/utils"
)

const testUserID = "did:privy:abc123"

// fakeProvider is a scriptable identity.Provider for handler tests.
type fakeProvider struct {
	session  *identity.Session
	loginErr error

	user    *identity.User
	userErr error

	linkEmailAddr  string
	linkWalletAddr string
	linkErr        error

	logoutErr error
	loggedOut []string
}

func (f *fakeProvider) Login(_ context.Context, _ string) (*identity.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.session, nil
}

func (f *fakeProvider) Logout(_ context.Context, userID string) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut = append(f.loggedOut, userID)
	return nil
}

func (f *fakeProvider) LinkEmail(_ context.Context, _ string) (string, error) {
	return f.linkEmailAddr, f.linkErr
}

func (f *fakeProvider) LinkWallet(_ context.Context, _ string) (string, error) {
	return f.linkWalletAddr, f.linkErr
}

func (f *fakeProvider) User(_ context.Context, _ string) (*identity.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func newFakeProvider() *fakeProvider {
	user := identity.User{
		ID:   testUserID,
		Name: "Alice",
	}
	return &fakeProvider{
		session: &identity.Session{
			User:          user,
			Ready:         true,
			Authenticated: true,
		},
		user:           &user,
		linkEmailAddr:  "alice@example.com",
		linkWalletAddr: "0xabcdef",
	}
}

func testConfig() config.Config {
	return config.Config{
		Log:    config.LogConfig{Level: "error", Format: "text"},
		Upload: config.UploadConfig{MaxFileSizeBytes: 1 << 20},
		Auth: config.AuthManagerConfig{
			Algorithm:       "EdDSA",
			SessionTokenTTL: time.Hour,
		},
	}
}

func newTestServer(t *testing.T, cfg config.Config, store kvstore.Store) (*mux.Router, *Server, *fakeProvider) {
	t.Helper()

	utils.GenerateAndSetKeys()
	t.Cleanup(func() {
		os.Unsetenv("AUTH_MANAGER_SECRET_PRIVATE_KEY")
		os.Unsetenv("AUTH_MANAGER_PUBLIC_KEY")
	})

	logger := logging.NewLogger(cfg)

	authManager, err := auth.NewJWTManager(cfg)
	require.NoError(t, err)

	provider := newFakeProvider()

	srv := NewServer(cfg,
		records.NewFileManager(cfg, store, logger),
		records.NewProfileManager(store, logger),
		provider, authManager, logger)

	return srv.InitRouter(), srv, provider
}

func sessionToken(t *testing.T, srv *Server) string {
	t.Helper()

	token, err := srv.authManager.CreateSessionToken(identity.User{ID: testUserID, Name: "Alice"})
	require.NoError(t, err)
	return token
}

func doRequest(router *mux.Router, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, apiPrefix+path, body)
	if token != "" {
		r.Header.Set("Authorization", authHeaderPrefix+token)
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

type multipartFormData struct {
	body        io.Reader
	contentType string
}

func createMultipartFormWithFile(t *testing.T, filename, contentType string, data []byte) multipartFormData {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="` + uploadFieldName + `"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)

	_, err = part.Write(data)
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	return multipartFormData{
		body:        body,
		contentType: writer.FormDataContentType(),
	}
}

var errProviderDown = errlocal.NewErrUnauthorized("identity provider request failed", "rejected", nil)
