package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionCounters = "counters"

// sequences allocates monotonically increasing numeric ids from a counters
// collection, one counter document per sequence name. FindOneAndUpdate with
// $inc is atomic, so concurrent allocations never collide.
type sequences struct {
	col *mongo.Collection
}

func newSequences(db *mongo.Database) *sequences {
	return &sequences{col: db.Collection(collectionCounters)}
}

func (s *sequences) next(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Value, nil
}
