package types

import "fmt"

// ParentKind discriminates which entity type a polymorphic reference points
// at. Together with the ID it forms a tagged union, so an (id, wrong-kind)
// pair is unrepresentable in the rest of the code.
type ParentKind string

const (
	ParentKindOpenCall   ParentKind = "open_call"
	ParentKindEngagement ParentKind = "engagement"
)

// IsValid checks if the parent kind is valid
func (k ParentKind) IsValid() bool {
	switch k {
	case ParentKindOpenCall, ParentKindEngagement:
		return true
	default:
		return false
	}
}

// String returns the string representation of the parent kind
func (k ParentKind) String() string {
	return string(k)
}

// ParseParentKind parses a string into a ParentKind
func ParseParentKind(s string) (ParentKind, error) {
	k := ParentKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid parent kind: %s", s)
	}
	return k, nil
}

// ParentRef is a reference to the workflow entity an activity or chat
// session belongs to.
type ParentRef struct {
	Kind ParentKind `json:"kind" firestore:"kind"`
	ID   int64      `json:"id" firestore:"id"`
}

// Validate checks the reference kind and ID
func (p ParentRef) Validate() error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("invalid parent kind: %s", p.Kind)
	}
	if p.ID <= 0 {
		return fmt.Errorf("invalid parent ID: %d", p.ID)
	}
	return nil
}

// IsZero reports whether the reference is unset
func (p ParentRef) IsZero() bool {
	return p.Kind == "" && p.ID == 0
}

// StageTable returns the order table of the referenced entity type
func (p ParentRef) StageTable() StageTable {
	if p.Kind == ParentKindEngagement {
		return EngagementStageTable()
	}
	return CallStageTable()
}
