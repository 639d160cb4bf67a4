package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/model"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const membersCollection = "members"

type memberRepository struct {
	client *firestore.Client
}

func newMemberRepository(client *firestore.Client) *memberRepository {
	return &memberRepository{client: client}
}

func (r *memberRepository) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	now := time.Now().UTC()
	created := m.Clone()
	if created.ID == "" {
		created.ID = types.NewMemberID()
	}
	created.Email = strings.ToLower(strings.TrimSpace(created.Email))
	created.Role = created.Role.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(membersCollection).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create member", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *memberRepository) Get(ctx context.Context, id types.MemberID) (*model.Member, error) {
	docSnap, err := r.client.Collection(membersCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get member", goerr.V("id", id))
	}

	var m model.Member
	if err := docSnap.DataTo(&m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode member", goerr.V("id", id))
	}

	return &m, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	iter := r.client.Collection(membersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query member by email", goerr.V("email", email))
	}

	var m model.Member
	if err := docSnap.DataTo(&m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode member", goerr.V("email", email))
	}

	return &m, nil
}

func (r *memberRepository) List(ctx context.Context) ([]*model.Member, error) {
	iter := r.client.Collection(membersCollection).Documents(ctx)
	defer iter.Stop()

	var members []*model.Member
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate members")
		}

		var m model.Member
		if err := docSnap.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode member", goerr.V("doc_id", docSnap.Ref.ID))
		}

		members = append(members, &m)
	}

	return members, nil
}

func (r *memberRepository) Update(ctx context.Context, m *model.Member) (*model.Member, error) {
	docRef := r.client.Collection(membersCollection).Doc(m.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", m.ID))
		}
		return nil, goerr.Wrap(err, "failed to check member existence", goerr.V("id", m.ID))
	}

	updated := m.Clone()
	updated.Email = strings.ToLower(strings.TrimSpace(updated.Email))
	updated.Role = updated.Role.Normalize()
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update member", goerr.V("id", m.ID))
	}

	return updated, nil
}

func (r *memberRepository) Delete(ctx context.Context, id types.MemberID) error {
	docRef := r.client.Collection(membersCollection).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "member not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check member existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete member", goerr.V("id", id))
	}

	return nil
}
