package slotRepo

import (
	"context"
	"fmt"

	"stayhub/database"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotCollection = "slots"

// MongoSlotStore implements Store on a "slots" collection holding one document
// per (listing_id, date).
type MongoSlotStore struct {
	coll *mongo.Collection
}

func NewMongoSlotStore() *MongoSlotStore {
	return &MongoSlotStore{coll: database.Collection(slotCollection)}
}

// EnsureIndexes creates the unique (listing_id, date) index the reserve
// guard depends on.
func (repo *MongoSlotStore) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "listing_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create slot index: %w", err)
	}
	return nil
}

func (repo *MongoSlotStore) GetSlots(ctx context.Context, listingID string, r models.DateRange) ([]models.Slot, error) {
	filter := bson.M{
		"listing_id": listingID,
		"date":       bson.M{"$in": r.Dates()},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, &models.StorageError{Op: "slots.find", Err: err}
	}
	defer cursor.Close(ctx)

	var found []models.Slot
	if err := cursor.All(ctx, &found); err != nil {
		return nil, &models.StorageError{Op: "slots.decode", Err: err}
	}
	return fillMissing(listingID, r, found), nil
}

// Reserve runs one guarded update per date inside a session transaction.
// Each update matches only while reserved+units still fits under capacity and
// the date is not blocked; the first unmatched date aborts the transaction, so
// a multi-date range is reserved all-or-nothing.
func (repo *MongoSlotStore) Reserve(ctx context.Context, listingID string, r models.DateRange, units int) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return &models.StorageError{Op: "slots.reserve.session", Err: err}
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, date := range r.Dates() {
			filter := bson.M{
				"listing_id": listingID,
				"date":       date,
				"blocked":    false,
				"$expr": bson.M{
					"$lte": bson.A{
						bson.M{"$add": bson.A{"$reserved", units}},
						"$capacity",
					},
				},
			}
			res, err := repo.coll.UpdateOne(sc, filter, bson.M{"$inc": bson.M{"reserved": units}})
			if err != nil {
				return &models.StorageError{Op: "slots.reserve", Err: err}
			}
			if res.MatchedCount == 0 {
				return &models.OverbookedError{ListingID: listingID, Date: date}
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return &models.StorageError{Op: "slots.reserve.begin", Err: err}
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}

// Release floors reserved at zero with a pipeline update, one date at a time.
// Releasing an already-released range is harmless here; the ledger guarantees
// it only happens once per booking.
func (repo *MongoSlotStore) Release(ctx context.Context, listingID string, r models.DateRange, units int) error {
	for _, date := range r.Dates() {
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "reserved", Value: bson.D{
					{Key: "$max", Value: bson.A{0, bson.D{{Key: "$subtract", Value: bson.A{"$reserved", units}}}}},
				}},
			}}},
		}
		filter := bson.M{"listing_id": listingID, "date": date}
		if _, err := repo.coll.UpdateOne(ctx, filter, pipeline); err != nil {
			return &models.StorageError{Op: "slots.release", Err: err}
		}
	}
	return nil
}

func (repo *MongoSlotStore) UpsertSlots(ctx context.Context, listingID string, slots []models.Slot) error {
	for _, s := range slots {
		filter := bson.M{"listing_id": listingID, "date": s.Date}
		update := bson.M{
			"$set": bson.M{
				"capacity":     s.Capacity,
				"base_price":   s.BasePrice,
				"blocked":      s.Blocked,
				"block_reason": s.BlockReason,
			},
			"$setOnInsert": bson.M{
				"listing_id": listingID,
				"date":       s.Date,
				"reserved":   0,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return &models.StorageError{Op: "slots.upsert", Err: err}
		}
	}
	return nil
}

func (repo *MongoSlotStore) SetBlocked(ctx context.Context, listingID, date string, blocked bool, reason string) error {
	filter := bson.M{"listing_id": listingID, "date": date}
	update := bson.M{"$set": bson.M{"blocked": blocked, "block_reason": reason}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return &models.StorageError{Op: "slots.block", Err: err}
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Kind: "slot", ID: listingID + "/" + date}
	}
	return nil
}
