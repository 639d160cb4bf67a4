package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
)

type memberRepository struct {
	mu      sync.RWMutex
	members map[types.MemberID]*model.Member
}

func newMemberRepository() *memberRepository {
	return &memberRepository{
		members: make(map[types.MemberID]*model.Member),
	}
}

func (r *memberRepository) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := m.Clone()
	if created.ID == "" {
		created.ID = types.NewMemberID()
	}
	created.Email = strings.ToLower(strings.TrimSpace(created.Email))
	created.Role = created.Role.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.members[created.ID] = created
	return created.Clone(), nil
}

func (r *memberRepository) Get(ctx context.Context, id types.MemberID) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.members[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", id))
	}

	return m.Clone(), nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, m := range r.members {
		if m.Email == email {
			return m.Clone(), nil
		}
	}

	return nil, nil
}

func (r *memberRepository) List(ctx context.Context) ([]*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*model.Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m.Clone())
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	return members, nil
}

func (r *memberRepository) Update(ctx context.Context, m *model.Member) (*model.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.members[m.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", m.ID))
	}

	updated := m.Clone()
	updated.Email = strings.ToLower(strings.TrimSpace(updated.Email))
	updated.Role = updated.Role.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.members[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *memberRepository) Delete(ctx context.Context, id types.MemberID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[id]; !exists {
		return goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", id))
	}

	delete(r.members, id)
	return nil
}
