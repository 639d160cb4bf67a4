package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/domain/interfaces"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = interfaces.ErrNotFound

type Firestore struct {
	client     *firestore.Client
	calls      *callRepository
	engagement *engagementRepository
	members    *memberRepository
	activities *activityRepository
	knowledge  *knowledgeRepository
	assist     *assistRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	return &Firestore{
		client:     client,
		calls:      newCallRepository(client),
		engagement: newEngagementRepository(client),
		members:    newMemberRepository(client),
		activities: newActivityRepository(client),
		knowledge:  newKnowledgeRepository(client),
		assist:     newAssistRepository(client),
	}, nil
}

func (f *Firestore) OpenCall() interfaces.OpenCallRepository {
	return f.calls
}

func (f *Firestore) Engagement() interfaces.EngagementRepository {
	return f.engagement
}

func (f *Firestore) Member() interfaces.MemberRepository {
	return f.members
}

func (f *Firestore) Activity() interfaces.ActivityRepository {
	return f.activities
}

func (f *Firestore) Knowledge() interfaces.KnowledgeRepository {
	return f.knowledge
}

func (f *Firestore) Assist() interfaces.AssistRepository {
	return f.assist
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

const countersCollection = "counters"

// nextID increments the named counter document in a transaction and returns
// the new value. Every int64-keyed collection draws its IDs from here.
func nextID(ctx context.Context, client *firestore.Client, counterDoc string) (int64, error) {
	counterRef := client.Collection(countersCollection).Doc(counterDoc)

	var id int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				id = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": id,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		current, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := current.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", current))
		}
		id = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: id},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID", goerr.V("counter", counterDoc))
	}

	return id, nil
}
