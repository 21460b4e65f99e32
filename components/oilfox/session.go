package oilfox

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/codeking/oilfox-hub/components/core"
	"github.com/codeking/oilfox-hub/components/status"
	"github.com/codeking/oilfox-hub/components/tank"
)

// Credentials identify the vendor account. Immutable per run.
type Credentials struct {
	Email    string
	Password string
}

// String implements fmt.Stringer without exposing the password.
func (c Credentials) String() string {
	return fmt.Sprintf("email=%s password=***", c.Email)
}

// Session owns the login protocol and the persisted token.
//
// Remarks:
//   - The poll cycle re-authenticates on every run by design. There is no
//     expiry tracking: a fresh token per cycle keeps the token lifecycle
//     trivial at the cost of one extra request per cycle.
type Session struct {
	client *Client
	creds  Credentials
	store  tank.TokenStore
}

// NewSession is a Session initialization.
//
// Parameters:
//   - client to reach the vendor API.
//   - creds - account credentials.
//   - store to persist the issued token.
func NewSession(client *Client, creds Credentials, store tank.TokenStore) *Session {
	return &Session{
		client: client,
		creds:  creds,
		store:  store,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// EnsureToken returns a valid bearer token.
//
// Remarks:
//   - force re-runs the login protocol even when a persisted token exists.
//   - On success the new token overwrites the persisted one.
//   - On failure the previously persisted token is left untouched and the
//     error is fatal for the current cycle.
func (s *Session) EnsureToken(force bool) (string, error) {
	if !force {
		if token, err := s.store.GetToken(); err == nil && token != "" {
			return token, nil
		}
	}

	return s.login()
}

func (s *Session) login() (string, error) {
	core.Log.Debugf("oilfox-session: logging in: %s", s.creds)

	code, body, err := s.client.PostJSON("login", loginRequest{
		Email:    s.creds.Email,
		Password: s.creds.Password,
	})
	if err != nil {
		return "", fmt.Errorf("oilfox-session: login request failed: %w", err)
	}

	if code != http.StatusOK {
		return "", fmt.Errorf("oilfox-session: login rejected: code=%d: %w",
			code, status.StatusAuthError)
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("oilfox-session: failed to decode login response: err=%v: %w",
			err, status.StatusAuthError)
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("oilfox-session: login response is missing the access token: %w",
			status.StatusAuthError)
	}

	if err := s.store.SetToken(resp.AccessToken); err != nil {
		return "", fmt.Errorf("oilfox-session: failed to persist token: err=%v: %w",
			err, status.StatusSinkError)
	}

	return resp.AccessToken, nil
}
