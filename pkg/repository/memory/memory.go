package memory

import (
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
)

// ErrNotFound is returned when an entity does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is the in-memory repository used for development and tests. Every
// read and write deep-copies so that callers can never mutate stored state
// through a returned pointer.
type Memory struct {
	calls      *callRepository
	engagement *engagementRepository
	members    *memberRepository
	activities *activityRepository
	knowledge  *knowledgeRepository
	assist     *assistRepository
	tokens     *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		calls:      newCallRepository(),
		engagement: newEngagementRepository(),
		members:    newMemberRepository(),
		activities: newActivityRepository(),
		knowledge:  newKnowledgeRepository(),
		assist:     newAssistRepository(),
		tokens:     newTokenStore(),
	}
}

func (m *Memory) OpenCall() interfaces.OpenCallRepository {
	return m.calls
}

func (m *Memory) Engagement() interfaces.EngagementRepository {
	return m.engagement
}

func (m *Memory) Member() interfaces.MemberRepository {
	return m.members
}

func (m *Memory) Activity() interfaces.ActivityRepository {
	return m.activities
}

func (m *Memory) Knowledge() interfaces.KnowledgeRepository {
	return m.knowledge
}

func (m *Memory) Assist() interfaces.AssistRepository {
	return m.assist
}

func (m *Memory) Close() error {
	return nil
}
