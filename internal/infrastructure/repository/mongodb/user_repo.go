package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	"github.com/daniyarm/rosterhub/internal/domain/entity"
)

// MongoUserRepository stores profile documents in a single users collection.
type MongoUserRepository struct {
	collection *mongo.Collection
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

// NewMongoUserRepository creates a repository over the given collection.
func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

// GetUserByID loads one profile document.
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	var raw bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, contract.ErrUserNotFound
		}
		return nil, err
	}
	user := mapUserDoc(raw)
	return &user, nil
}

// UpsertUser writes the whole document, creating it when absent. Concurrent
// creations for the same id converge last-write-wins.
func (r *MongoUserRepository) UpsertUser(ctx context.Context, user *entity.UserProfile) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	return err
}

// TouchLastActive merges lastActive into the document, leaving every other
// field alone.
func (r *MongoUserRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastActive": at}}, opts)
	return err
}

// RecordVisit bumps visitCount and refreshes lastVisit.
func (r *MongoUserRepository) RecordVisit(ctx context.Context, id string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"visitCount": 1},
		"$set": bson.M{"lastVisit": at},
	})
	return err
}

// IncrementPoints applies an atomic store-level increment.
func (r *MongoUserRepository) IncrementPoints(ctx context.Context, id string, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"points": delta}})
	return err
}

// ResetStats zeroes the engagement counters and demotes to participant.
func (r *MongoUserRepository) ResetStats(ctx context.Context, id string, at time.Time, clearAdmin bool) error {
	fields := bson.M{
		"points":     int64(0),
		"visitCount": int64(0),
		"lastVisit":  at,
		"lastActive": at,
		"role":       entity.RoleParticipant,
	}
	if clearAdmin {
		fields["isAdmin"] = false
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// SetRole updates role and the recomputed isAdmin flag together.
func (r *MongoUserRepository) SetRole(ctx context.Context, id string, role entity.Role, isAdmin bool) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "isAdmin": isAdmin}})
	return err
}

// SetDisplayData overwrites the display attributes from a preset and forces
// the participant role.
func (r *MongoUserRepository) SetDisplayData(ctx context.Context, id string, preset entity.PresetUserData) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"firstName": preset.FirstName,
		"lastName":  preset.LastName,
		"photoUrl":  preset.PhotoURL,
		"role":      entity.RoleParticipant,
	}})
	return err
}

// GrantAdmin sets isAdmin and the organizer role.
func (r *MongoUserRepository) GrantAdmin(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"isAdmin": true, "role": entity.RoleOrganizer}})
	return err
}

// AddLikePair appends the like to both sides in one ordered batch. Both
// documents live in the same collection, so the pair ships as a single
// command rather than two round-trips.
func (r *MongoUserRepository) AddLikePair(ctx context.Context, actorID, targetID string) error {
	models := []mongo.WriteModel{
		mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": targetID}).
			SetUpdate(bson.M{"$addToSet": bson.M{"likedBy": actorID}}),
		mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": actorID}).
			SetUpdate(bson.M{"$addToSet": bson.M{"likes": targetID}}),
	}
	_, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	return err
}

// ListUserRefs returns id and username for every stored profile.
func (r *MongoUserRepository) ListUserRefs(ctx context.Context) ([]contract.UserRef, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1, "username": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var refs []contract.UserRef
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		refs = append(refs, contract.UserRef{
			ID:       asString(doc["_id"]),
			Username: asString(doc["username"]),
		})
	}
	return refs, cursor.Err()
}

// mapUserDoc builds a profile from a raw document, defaulting every missing
// or malformed field. One bad record must never break a whole snapshot.
func mapUserDoc(doc bson.M) entity.UserProfile {
	role := entity.Role(asString(doc["role"]))
	if !role.Valid() {
		role = entity.DefaultRole()
	}
	return entity.UserProfile{
		ID:         asString(doc["_id"]),
		Username:   asString(doc["username"]),
		FirstName:  asString(doc["firstName"]),
		LastName:   asString(doc["lastName"]),
		PhotoURL:   asString(doc["photoUrl"]),
		Points:     asInt64(doc["points"]),
		VisitCount: asInt64(doc["visitCount"]),
		LastVisit:  asTime(doc["lastVisit"]),
		LastActive: asTime(doc["lastActive"]),
		IsAdmin:    asBool(doc["isAdmin"]),
		Role:       role,
		Streak:     asInt64(doc["streak"]),
		Likes:      asStringSlice(doc["likes"]),
		LikedBy:    asStringSlice(doc["likedBy"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time()
	case time.Time:
		return t
	}
	return time.Time{}
}

func asStringSlice(v any) []string {
	switch vals := v.(type) {
	case primitive.A:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return vals
	}
	return nil
}
