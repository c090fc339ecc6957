package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	ListingsCollection *mongo.Collection
	BookingsCollection *mongo.Collection
	ReviewsCollection  *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "kasuwadb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ListingsCollection = Client.Database(dbName).Collection("listings")
	BookingsCollection = Client.Database(dbName).Collection("bookings")
	ReviewsCollection = Client.Database(dbName).Collection("reviews")
}

// EnsureIndexes creates the unique indexes the uniqueness invariants rely
// on. Duplicate listing names per vendor and duplicate live reviews are
// rejected by the store, not by check-then-act in handlers, so concurrent
// requests cannot race past the check.
func EnsureIndexes(ctx context.Context) error {
	_, err := ListingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "vendorId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// One live review per (user, listing); soft-deleted rows fall out of the
	// partial filter so the author can review again after deleting.
	_, err = ReviewsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"isDeleted": false}),
	})
	if err != nil {
		return err
	}

	_, err = ReviewsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "isDeleted", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
