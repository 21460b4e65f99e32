package stsink

import (
	"github.com/codeking/oilfox-hub/components/storage/stcore"
)

const tokenKey = "access_token"

// TokenStore persists the session token in a database bucket.
type TokenStore struct {
	db stcore.DB
}

// NewTokenStore is a TokenStore initialization.
//
// Parameters:
//   - db to persist the token, survives process restarts.
func NewTokenStore(db stcore.DB) *TokenStore {
	return &TokenStore{
		db: db,
	}
}

// GetToken returns the persisted token.
//
// Remarks:
//   - Returns status.StatusNoData if no token was ever persisted.
func (s *TokenStore) GetToken() (string, error) {
	blob, err := s.db.Read(tokenKey)
	if err != nil {
		return "", err
	}

	return string(blob.Data), nil
}

// SetToken overwrites the persisted token.
func (s *TokenStore) SetToken(token string) error {
	return s.db.Write(tokenKey, stcore.Blob{Data: []byte(token)})
}
