// Package sequence issues monotonically increasing numbers from named
// counters stored in the "counters" collection.
package sequence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopapi/internal/apperr"
	"shopapi/internal/models"
)

const (
	UserSequence  = "user"
	OrderSequence = "order"
)

// Store hands out the next value of a named sequence. Implementations
// must make the increment-and-read a single atomic operation: N
// concurrent callers get N distinct consecutive values.
type Store interface {
	NextSeq(ctx context.Context, name string) (int64, error)
}

type MongoStore struct {
	counters *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{counters: db.Collection("counters")}
}

// NextSeq performs an atomic find-and-increment, creating the counter
// at 1 on first use. A failure here means no value was issued.
func (s *MongoStore) NextSeq(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := s.counters.FindOneAndUpdate(
		ctx,
		bson.M{"name": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, &apperr.StoreError{Op: "sequence.next " + name, Err: err}
	}
	return counter.Seq, nil
}
