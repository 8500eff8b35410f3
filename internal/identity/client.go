package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/errlocal"
	"github.com/webdrive/webdrive_api/internal/logging"
)

const (
	sessionsEndpoint       = "/sessions"
	usersEndpoint          = "/users"
	providerRequestTimeout = time.Second * 10
	tokenHeader            = "X-Service-Token"
)

type providerClient struct {
	logger *logging.Logger
	c      *http.Client
	host   string
	token  string
}

func NewClient(cfg config.IdentityConfig, log *logging.Logger) Provider {
	return &providerClient{
		c:      &http.Client{Timeout: providerRequestTimeout},
		host:   cfg.Address,
		token:  cfg.Token,
		logger: log.WithIdentityClientTag(),
	}
}

type loginRequestBody struct {
	AuthCode string `json:"auth_code"`
}

//nolint:errchkjson // do not check errors
func (b *loginRequestBody) Reader() io.Reader {
	jsonStr, _ := json.Marshal(b)

	return bytes.NewReader(jsonStr)
}

type linkResponse struct {
	Address string `json:"address"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *providerClient) Login(ctx context.Context, authCode string) (*Session, error) {
	reqBody := loginRequestBody{AuthCode: authCode}

	session := new(Session)
	if err := c.do(ctx, http.MethodPost, sessionsEndpoint, reqBody.Reader(), session); err != nil {
		return nil, err
	}

	c.logger.WithField("user_id", session.User.ID).Debug("provider login completed")

	return session, nil
}

func (c *providerClient) Logout(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, sessionsEndpoint+"/"+url.PathEscape(userID), nil, nil)
}

func (c *providerClient) LinkEmail(ctx context.Context, userID string) (string, error) {
	return c.link(ctx, userID, "email")
}

func (c *providerClient) LinkWallet(ctx context.Context, userID string) (string, error) {
	return c.link(ctx, userID, "wallet")
}

func (c *providerClient) User(ctx context.Context, userID string) (*User, error) {
	user := new(User)
	if err := c.do(ctx, http.MethodGet, usersEndpoint+"/"+url.PathEscape(userID), nil, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (c *providerClient) link(ctx context.Context, userID, kind string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/links/%s", usersEndpoint, url.PathEscape(userID), kind)

	var resp linkResponse
	if err := c.do(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return "", err
	}

	c.logger.WithField("user_id", userID).WithField("kind", kind).Debug("provider link completed")

	return resp.Address, nil
}

func (c *providerClient) do(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.host+endpoint, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return errlocal.NewErrInternal("identity provider unreachable", err.Error(), nil)
	}
	defer func() { _ = resp.Body.Close() }()

	decoder := json.NewDecoder(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseErrorResponse(decoder, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return decoder.Decode(out)
}

func parseErrorResponse(decoder *json.Decoder, code int) error {
	var errResp errorResponse
	_ = decoder.Decode(&errResp)
	msg := "identity provider request failed"

	switch code {
	case http.StatusBadRequest:
		return errlocal.NewErrBadRequest(msg, errResp.Detail, nil)
	case http.StatusUnauthorized:
		return errlocal.NewErrUnauthorized(msg, errResp.Detail, nil)
	case http.StatusForbidden:
		return errlocal.NewErrForbidden(msg, errResp.Detail, nil)
	case http.StatusNotFound:
		return errlocal.NewErrNotFound(msg, errResp.Detail, nil)
	default:
	}

	return errlocal.NewErrInternal(msg, errResp.Detail, nil)
}
