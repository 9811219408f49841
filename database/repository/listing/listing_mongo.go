package listingRepo

import (
	"context"
	"errors"

	"stayhub/database"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const listingCollection = "listings"

// MongoListingRepo implements Repository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

func NewMongoListingRepo() *MongoListingRepo {
	return &MongoListingRepo{coll: database.Collection(listingCollection)}
}

func (repo *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.NotFoundError{Kind: "listing", ID: id}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "listings.get", Err: err}
	}
	return &listing, nil
}
