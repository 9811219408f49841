package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayhub/database"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingCollection = "bookings"

// MongoBookingRepo implements Repository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.Collection(bookingCollection)}
}

// EnsureIndexes creates the id and confirmation-code unique indexes.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "confirmation_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return &models.StorageError{Op: "bookings.insert", Err: err}
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.NotFoundError{Kind: "booking", ID: id}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "bookings.get", Err: err}
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) ConfirmationCodeExists(ctx context.Context, code string) (bool, error) {
	count, err := repo.coll.CountDocuments(ctx, bson.M{"confirmation_code": code}, options.Count().SetLimit(1))
	if err != nil {
		return false, &models.StorageError{Op: "bookings.code_check", Err: err}
	}
	return count > 0, nil
}

// TransitionStatus is a FindOneAndUpdate filtered on the allowed source
// statuses. A CAS miss is disambiguated with a second read so the caller gets
// the observed status in the StateTransitionError.
func (repo *MongoBookingRepo) TransitionStatus(ctx context.Context, bookingID, event string, from []string, upd models.BookingStatusUpdate) (*models.Booking, error) {
	set := bson.M{
		"status":     upd.Status,
		"updated_at": time.Now(),
	}
	if upd.PaymentStatus != "" {
		set["payment_status"] = upd.PaymentStatus
	}
	if upd.CancelledAt != nil {
		set["cancelled_at"] = *upd.CancelledAt
	}
	if upd.CancelledBy != "" {
		set["cancelled_by"] = upd.CancelledBy
	}
	if upd.CancellationReason != "" {
		set["cancellation_reason"] = upd.CancellationReason
	}
	if upd.RefundAmount != nil {
		set["refund_amount"] = *upd.RefundAmount
	}

	filter := bson.M{"id": bookingID, "status": bson.M{"$in": from}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := repo.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.StorageError{Op: "bookings.transition", Err: err}
	}

	current, getErr := repo.GetByID(ctx, bookingID)
	if getErr != nil {
		return nil, getErr
	}
	return nil, &models.StateTransitionError{BookingID: bookingID, From: current.Status, Event: event}
}

func (repo *MongoBookingRepo) ListDueForCompletion(ctx context.Context, before string, limit int) ([]models.Booking, error) {
	filter := bson.M{
		"status":   models.BookingStatusConfirmed,
		"end_date": bson.M{"$lte": before},
	}
	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "end_date", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, &models.StorageError{Op: "bookings.due", Err: err}
	}
	defer cursor.Close(ctx)

	var due []models.Booking
	if err := cursor.All(ctx, &due); err != nil {
		return nil, &models.StorageError{Op: "bookings.due_decode", Err: err}
	}
	return due, nil
}
