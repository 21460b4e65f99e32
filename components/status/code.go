package status

import "errors"

var (
	// StatusConnectivityError indicates that the remote API is unreachable or timed out.
	StatusConnectivityError = errors.New("remote unreachable")

	// StatusAuthError indicates that a login attempt did not yield a usable token.
	StatusAuthError = errors.New("invalid credentials")

	// StatusFormatError indicates that a response lacks the expected structure.
	StatusFormatError = errors.New("malformed response")

	// StatusSinkError indicates that the persistence layer rejected an operation.
	StatusSinkError = errors.New("sink operation failed")

	// StatusNoData indicates that the requested data doesn't exist.
	StatusNoData = errors.New("no data")

	// StatusInvalidState indicates that an operation can't be performed due to invalid state.
	StatusInvalidState = errors.New("invalid state")

	// StatusNotSupported indicates that an operation isn't supported.
	StatusNotSupported = errors.New("not implemented")
)
