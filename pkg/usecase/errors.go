package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrCallNotFound       = errors.New("open call not found")
	ErrEngagementNotFound = errors.New("engagement not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrKnowledgeNotFound  = errors.New("knowledge doc not found")
	ErrSessionNotFound    = errors.New("assist session not found")

	// Access control errors
	ErrStageEditDenied = errors.New("actor is not an assignee of the current stage")
	ErrSessionDenied   = errors.New("assist session belongs to another owner")

	// Validation errors
	ErrInvalidStage = errors.New("unknown stage name")
)

// Context keys for error values
const (
	CallIDKey       = "call_id"
	EngagementIDKey = "engagement_id"
	MemberIDKey     = "member_id"
	ActivityIDKey   = "activity_id"
	KnowledgeIDKey  = "knowledge_id"
	SessionIDKey    = "session_id"
	StageKey        = "stage"
	ActorKey        = "actor"
)
