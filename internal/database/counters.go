package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NextOrderSerial allocates the next order serial for the given year using
// an atomic increment on the counters collection. Each serial is handed out
// exactly once, so two concurrent placements can never share an order id.
func NextOrderSerial(ctx context.Context, db *mongo.Database, year int) (int64, error) {
	res := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": fmt.Sprintf("order-%d", year)},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&counter); err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// FormatOrderID renders the business identifier, e.g. ORD2026-0001.
// Serials past 9999 widen naturally rather than wrap.
func FormatOrderID(year int, serial int64) string {
	return fmt.Sprintf("ORD%d-%04d", year, serial)
}
