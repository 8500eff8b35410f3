package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/logging"
	"github.com/webdrive/webdrive_api/internal/models"
)

var (
	testSessionResponse = []byte(`
{
  "user": {
    "id": "did:privy:abc123",
    "name": "Alice",
    "email": {"address": "alice@example.com"},
    "wallet": {"address": "0xabcdef"},
    "picture": "https://example.com/a.png"
  },
  "ready": true,
  "authenticated": true
}`)
	testLinkResponse  = []byte(`{"address": "0x1234"}`)
	testErrorResponse = []byte(`{"detail": "bad auth code"}`)
)

type providerClientTestSuite struct {
	suite.Suite
	client     *providerClient
	testServer *httptest.Server
}

func (s *providerClientTestSuite) SetupTest() {
	s.client = &providerClient{
		logger: logging.NewLogger(config.Config{Log: config.LogConfig{Level: "error"}}),
		c:      http.DefaultClient,
		token:  "test-token",
	}
}

func (s *providerClientTestSuite) TearDownTest() {
	if s.testServer != nil {
		s.testServer.Close()
	}
}

func TestProviderClientTestSuite(t *testing.T) {
	suite.Run(t, new(providerClientTestSuite))
}

func (s *providerClientTestSuite) serve(handler http.HandlerFunc) {
	s.testServer = httptest.NewServer(handler)
	s.client.host = s.testServer.URL
}

func (s *providerClientTestSuite) TestLogin() {
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/sessions", r.URL.Path)
		s.Equal("test-token", r.Header.Get(tokenHeader))
		_, _ = w.Write(testSessionResponse)
	})

	session, err := s.client.Login(context.Background(), "code-1")
	s.Require().NoError(err)
	s.True(session.Ready)
	s.True(session.Authenticated)
	s.Equal("did:privy:abc123", session.User.ID)
	s.Equal("Alice", session.User.Name)
	s.Require().NotNil(session.User.Email)
	s.Equal("alice@example.com", session.User.Email.Address)
}

func (s *providerClientTestSuite) TestLogin_Rejected() {
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write(testErrorResponse)
	})

	_, err := s.client.Login(context.Background(), "bad-code")
	s.Require().Error(err)

	var unauth *errlocal.ErrUnauthorized
	s.ErrorAs(err, &unauth)
	s.Equal("bad auth code", unauth.System())
}

func (s *providerClientTestSuite) TestLogout() {
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodDelete, r.Method)
		s.Equal("/sessions/did:privy:abc123", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	s.NoError(s.client.Logout(context.Background(), "did:privy:abc123"))
}

func (s *providerClientTestSuite) TestLinkEmail() {
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/users/did:privy:abc123/links/email", r.URL.Path)
		_, _ = w.Write(testLinkResponse)
	})

	address, err := s.client.LinkEmail(context.Background(), "did:privy:abc123")
	s.Require().NoError(err)
	s.Equal("0x1234", address)
}

func (s *providerClientTestSuite) TestLinkWallet_NotFound() {
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "no such user"}`))
	})

	_, err := s.client.LinkWallet(context.Background(), "missing")
	s.Require().Error(err)

	var notFound *errlocal.ErrNotFound
	s.ErrorAs(err, &notFound)
}

func (s *providerClientTestSuite) TestUser() {
	s.serve(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/users/did:privy:abc123", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "did:privy:abc123", "name": "Alice"}`))
	})

	user, err := s.client.User(context.Background(), "did:privy:abc123")
	s.Require().NoError(err)
	s.Equal("Alice", user.Name)
	s.Nil(user.Email)
}

func (s *providerClientTestSuite) TestUnreachableProvider() {
	s.client.host = "http://127.0.0.1:1"

	_, err := s.client.Login(context.Background(), "code")
	s.Require().Error(err)

	var internal *errlocal.ErrInternal
	s.ErrorAs(err, &internal)
}

func TestProfileDefaults(t *testing.T) {
	suiteUser := User{
		Name:   "Alice",
		Email:  &EmailAccount{Address: "alice@example.com"},
		Wallet: &WalletAccount{Address: "0xabc"},
	}

	defaults := suiteUser.ProfileDefaults()
	if defaults != (models.Profile{DisplayName: "Alice", Email: "alice@example.com", WalletAddress: "0xabc"}) {
		t.Fatalf("unexpected defaults: %+v", defaults)
	}

	empty := User{}.ProfileDefaults()
	if empty != (models.Profile{}) {
		t.Fatalf("expected zero profile, got %+v", empty)
	}
}
