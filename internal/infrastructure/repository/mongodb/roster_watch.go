package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// RosterWatcher delivers full top-N snapshots of the ranked users: one
// immediately on Watch, then one per change-stream event, until the context
// is cancelled.
type RosterWatcher struct {
	collection *mongo.Collection
	logger     usecasecontract.IAppLogger
}

var _ contract.IRosterWatcher = (*RosterWatcher)(nil)

// NewRosterWatcher creates a watcher over the users collection.
func NewRosterWatcher(collection *mongo.Collection, logger usecasecontract.IAppLogger) *RosterWatcher {
	return &RosterWatcher{collection: collection, logger: logger}
}

// Watch runs the subscription loop on its own goroutine. Snapshots replace
// one another whole; callbacks are invoked in the order events arrive.
func (w *RosterWatcher) Watch(ctx context.Context, limit int64, onSnapshot contract.RosterSnapshotFunc, onError contract.RosterErrorFunc) {
	go w.run(ctx, limit, onSnapshot, onError)
}

func (w *RosterWatcher) run(ctx context.Context, limit int64, onSnapshot contract.RosterSnapshotFunc, onError contract.RosterErrorFunc) {
	stream, err := w.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		w.logger.Errorf("roster watch: failed to open change stream: %v", err)
		onError(err)
		return
	}
	defer stream.Close(context.Background())

	// Initial snapshot before any change arrives.
	if err := w.push(ctx, limit, onSnapshot); err != nil {
		onError(err)
		return
	}

	for stream.Next(ctx) {
		if err := w.push(ctx, limit, onSnapshot); err != nil {
			onError(err)
			return
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		w.logger.Errorf("roster watch: change stream failed: %v", err)
		onError(err)
	}
}

// push re-queries the ranked top-N and hands the mapped snapshot to the
// observer. Ties on points break by id ascending so re-queries are stable.
func (w *RosterWatcher) push(ctx context.Context, limit int64, onSnapshot contract.RosterSnapshotFunc) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	cursor, err := w.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		w.logger.Errorf("roster watch: query failed: %v", err)
		return err
	}
	defer cursor.Close(ctx)

	var users []entity.UserProfile
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			// A record that will not even decode degrades to defaults
			// rather than poisoning the snapshot.
			users = append(users, entity.UserProfile{})
			continue
		}
		users = append(users, mapUserDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return err
	}
	onSnapshot(users)
	return nil
}
