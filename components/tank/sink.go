package tank

// GroupHandle identifies a persisted device group within the sink.
type GroupHandle string

// ValueSink persists the two-level device group hierarchy.
//
// Remarks:
//   - Implementation should be thread-safe.
type ValueSink interface {
	// ResolveOrCreateGroup returns the group for the device with externalID,
	// creating it when missing.
	//
	// Remarks:
	//   - Idempotent: repeated calls with the same (parentScope, externalID)
	//     return the same handle and never duplicate the group.
	//   - label is refreshed on every call.
	ResolveOrCreateGroup(parentScope string, externalID string, label string) (GroupHandle, error)

	// ResolveOrCreateValue creates or updates a named value under the group.
	//
	// Remarks:
	//   - Idempotent per (group, field name): repeated calls update value and
	//     ordinal in place.
	ResolveOrCreateValue(group GroupHandle, field Field, ordinal int) error
}

// TokenStore persists the session token across process restarts.
type TokenStore interface {
	// GetToken returns the persisted token.
	//
	// Remarks:
	//   - Implementation should return status.StatusNoData if no token was
	//     ever persisted.
	GetToken() (string, error)

	// SetToken overwrites the persisted token.
	SetToken(token string) error
}
