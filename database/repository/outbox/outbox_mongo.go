package outboxRepo

import (
	"context"

	"stayhub/database"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const outboxCollection = "booking_events"

// MongoOutboxRepo implements Repository using MongoDB.
type MongoOutboxRepo struct {
	coll *mongo.Collection
}

func NewMongoOutboxRepo() *MongoOutboxRepo {
	return &MongoOutboxRepo{coll: database.Collection(outboxCollection)}
}

func (repo *MongoOutboxRepo) Append(ctx context.Context, event models.BookingEvent) error {
	if _, err := repo.coll.InsertOne(ctx, event); err != nil {
		return &models.StorageError{Op: "outbox.append", Err: err}
	}
	return nil
}

func (repo *MongoOutboxRepo) ListPending(ctx context.Context, limit int) ([]models.BookingEvent, error) {
	filter := bson.M{"dispatched": false}
	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, &models.StorageError{Op: "outbox.list", Err: err}
	}
	defer cursor.Close(ctx)

	var events []models.BookingEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, &models.StorageError{Op: "outbox.decode", Err: err}
	}
	return events, nil
}

func (repo *MongoOutboxRepo) MarkDispatched(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	filter := bson.M{"id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{"dispatched": true}}
	if _, err := repo.coll.UpdateMany(ctx, filter, update); err != nil {
		return &models.StorageError{Op: "outbox.mark", Err: err}
	}
	return nil
}
