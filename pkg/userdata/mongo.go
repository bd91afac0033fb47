package userdata

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore keeps user records as documents keyed by the SSO subject.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	if collection == "" {
		collection = "users"
	}
	return &MongoStore{coll: db.Collection(collection)}
}

func (s *MongoStore) Get(ctx context.Context, subject string) (Record, error) {
	if subject == "" {
		return Record{}, ErrEmptySubject
	}

	var rec Record
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: subject}}).Decode(&rec)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return Record{}, ErrNotFound
	case err != nil:
		return Record{}, errors.Join(ErrLookupFailed, err)
	}
	return rec, nil
}

func (s *MongoStore) TouchLogin(ctx context.Context, subject string, at time.Time) error {
	if subject == "" {
		return ErrEmptySubject
	}

	at = at.UTC()
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: subject}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "last_login", Value: at},
			{Key: "updated_at", Value: at},
		}}},
	)
	if err != nil {
		return errors.Join(ErrLookupFailed, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Put inserts or replaces rec. It is used by seeding and tests.
func (s *MongoStore) Put(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return ErrEmptySubject
	}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: rec.ID}}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrLookupFailed, err)
	}
	return nil
}
