package status

import "strconv"

// Code is an instance health code reported by the synchronization pipeline.
type Code int

const (
	// CodeActive indicates that the instance is operating normally.
	CodeActive Code = 102

	// CodeInactive indicates that the instance has not completed a cycle yet.
	CodeInactive Code = 104

	// CodeError indicates that the last synchronization cycle failed.
	CodeError Code = 200

	// CodeInvalidCredentials indicates that the account credentials were rejected.
	CodeInvalidCredentials Code = 201
)

// String returns a human readable code description.
func (c Code) String() string {
	switch c {
	case CodeActive:
		return "active"
	case CodeInactive:
		return "inactive"
	case CodeError:
		return "error"
	case CodeInvalidCredentials:
		return "invalid credentials"
	default:
		return "unknown (" + strconv.Itoa(int(c)) + ")"
	}
}

// Handler receives health code updates.
type Handler interface {
	// SetStatus reports the most recent health code.
	SetStatus(code Code)
}
