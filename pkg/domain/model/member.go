package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

// Member is a team member in the portal directory. The directory is the
// lookup target for resolving assignee identifiers to email addresses.
type Member struct {
	ID        types.MemberID `json:"id" firestore:"id"`
	Name      string         `json:"name" firestore:"name"`
	Email     string         `json:"email" firestore:"email"`
	Title     string         `json:"title" firestore:"title"`
	Role      types.Role     `json:"role" firestore:"role"`
	CreatedAt time.Time      `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" firestore:"updated_at"`
}

// Validate checks required member fields
func (m *Member) Validate() error {
	if m.Name == "" {
		return goerr.New("member name is required")
	}
	if m.Email == "" {
		return goerr.New("member email is required")
	}
	if !m.Role.Normalize().IsValid() {
		return goerr.New("invalid member role", goerr.V("role", string(m.Role)))
	}
	return nil
}

// Clone returns a copy of the member
func (m *Member) Clone() *Member {
	copied := *m
	return &copied
}
