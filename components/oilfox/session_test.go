package oilfox

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codeking/oilfox-hub/components/status"
)

type testTokenStore struct {
	token  string
	setErr error
}

func (s *testTokenStore) GetToken() (string, error) {
	if s.token == "" {
		return "", status.StatusNoData
	}

	return s.token, nil
}

func (s *testTokenStore) SetToken(token string) error {
	if s.setErr != nil {
		return s.setErr
	}

	s.token = token

	return nil
}

func TestSessionEnsureTokenLogin(t *testing.T) {
	var gotRequest loginRequest
	loginCount := 0

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v3/login", r.URL.Path)
			require.Nil(t, json.NewDecoder(r.Body).Decode(&gotRequest))

			loginCount++

			_, err := w.Write([]byte(`{"access_token": "token-1"}`))
			require.Nil(t, err)
		}))
	defer server.Close()

	store := &testTokenStore{}
	session := NewSession(
		newTestClient(t, server.URL, SchemaGen1),
		Credentials{Email: "user@example.com", Password: "secret"},
		store,
	)

	token, err := session.EnsureToken(true)
	require.Nil(t, err)
	require.Equal(t, "token-1", token)
	require.Equal(t, 1, loginCount)

	require.Equal(t, "user@example.com", gotRequest.Email)
	require.Equal(t, "secret", gotRequest.Password)

	// The issued token was persisted.
	require.Equal(t, "token-1", store.token)
}

func TestSessionEnsureTokenCached(t *testing.T) {
	loginCount := 0

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			loginCount++

			_, err := w.Write([]byte(`{"access_token": "token-1"}`))
			require.Nil(t, err)
		}))
	defer server.Close()

	store := &testTokenStore{token: "cached-token"}
	session := NewSession(
		newTestClient(t, server.URL, SchemaGen1),
		Credentials{Email: "user@example.com", Password: "secret"},
		store,
	)

	token, err := session.EnsureToken(false)
	require.Nil(t, err)
	require.Equal(t, "cached-token", token)
	require.Equal(t, 0, loginCount)

	// force bypasses the persisted token.
	token, err = session.EnsureToken(true)
	require.Nil(t, err)
	require.Equal(t, "token-1", token)
	require.Equal(t, 1, loginCount)
}

func TestSessionEnsureTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
	defer server.Close()

	store := &testTokenStore{}
	session := NewSession(
		newTestClient(t, server.URL, SchemaGen1),
		Credentials{Email: "user@example.com", Password: "wrong"},
		store,
	)

	_, err := session.EnsureToken(true)
	require.True(t, errors.Is(err, status.StatusAuthError))
	require.Equal(t, "", store.token)
}

func TestSessionEnsureTokenMissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte(`{}`))
			require.Nil(t, err)
		}))
	defer server.Close()

	store := &testTokenStore{}
	session := NewSession(
		newTestClient(t, server.URL, SchemaGen1),
		Credentials{Email: "user@example.com", Password: "secret"},
		store,
	)

	_, err := session.EnsureToken(true)
	require.True(t, errors.Is(err, status.StatusAuthError))
	require.Equal(t, "", store.token)
}

func TestSessionEnsureTokenTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	session := NewSession(
		newTestClient(t, server.URL, SchemaGen1),
		Credentials{Email: "user@example.com", Password: "secret"},
		&testTokenStore{},
	)

	_, err := session.EnsureToken(true)
	require.True(t, errors.Is(err, status.StatusConnectivityError))
}

func TestSessionEnsureTokenPersistFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte(`{"access_token": "token-1"}`))
			require.Nil(t, err)
		}))
	defer server.Close()

	store := &testTokenStore{setErr: errors.New("disk full")}
	session := NewSession(
		newTestClient(t, server.URL, SchemaGen1),
		Credentials{Email: "user@example.com", Password: "secret"},
		store,
	)

	_, err := session.EnsureToken(true)
	require.True(t, errors.Is(err, status.StatusSinkError))
}

func TestCredentialsStringMasksPassword(t *testing.T) {
	creds := Credentials{Email: "user@example.com", Password: "secret"}
	require.NotContains(t, creds.String(), "secret")
	require.Contains(t, creds.String(), "user@example.com")
}
