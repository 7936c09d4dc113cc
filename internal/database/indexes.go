package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the query indexes the listing and booking lookups
// filter on. The users email index is intentionally NOT unique: the
// user-upsert path enforces one document per email by querying first, and a
// unique constraint would turn that flow's concurrent retries into write
// errors.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	menuIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "host.email", Value: 1}},
			Options: options.Index().SetName("host_email_index"),
		},
	}
	if _, err := db.Collection(MenuCollection).Indexes().CreateMany(ctx, menuIndexes); err != nil {
		log.Println("EnsureIndexes: menu index error:", err)
		return err
	}

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "guest.email", Value: 1}},
			Options: options.Index().SetName("guest_email_index"),
		},
		{
			Keys:    bson.D{{Key: "host.email", Value: 1}},
			Options: options.Index().SetName("host_email_index"),
		},
	}
	if _, err := db.Collection(BookingsCollection).Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		log.Println("EnsureIndexes: booking index error:", err)
		return err
	}

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_index"),
	}
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, userIndex); err != nil {
		log.Println("EnsureIndexes: user index error:", err)
		return err
	}

	return nil
}
