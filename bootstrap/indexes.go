package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the feed and counter paths rely on.
// The unique likes index is what arbitrates concurrent duplicate toggles.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("likes").Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "post_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_user_post"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "likes_count", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("comments").Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "post_id", Value: 1},
				{Key: "is_deleted", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	)
	return err
}
