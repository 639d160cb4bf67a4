package types

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MemberID identifies a team member in the directory
type MemberID string

// NewMemberID generates a new random member ID
func NewMemberID() MemberID {
	return MemberID(uuid.New().String())
}

// Validate checks if the member ID is a well-formed UUID
func (id MemberID) Validate() error {
	if id == "" {
		return goerr.New("member ID is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid member ID", goerr.V("id", string(id)))
	}
	return nil
}

// String returns the string representation of the member ID
func (id MemberID) String() string {
	return string(id)
}

// SessionID identifies an assistant chat session
type SessionID string

// NewSessionID generates a new time-ordered session ID
func NewSessionID() SessionID {
	return SessionID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks if the session ID is a well-formed UUID
func (id SessionID) Validate() error {
	if id == "" {
		return goerr.New("session ID is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid session ID", goerr.V("id", string(id)))
	}
	return nil
}

// String returns the string representation of the session ID
func (id SessionID) String() string {
	return string(id)
}

// NormalizeIdentifier canonicalizes a user-supplied identifier (member ID,
// email address, or display name). Assignee identity comparison uses this
// form on both sides, so identifiers that differ only in surrounding
// whitespace compare equal.
func NormalizeIdentifier(s string) string {
	return strings.TrimSpace(s)
}
