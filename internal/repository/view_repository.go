package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/model"
)

// ViewRepository computes the per-user derived views that the cache layer
// stores: posts the user liked, and posts the user commented on.
type ViewRepository struct {
	ColLikes    *mongo.Collection
	ColComments *mongo.Collection
}

func NewViewRepository(db *mongo.Database) *ViewRepository {
	return &ViewRepository{
		ColLikes:    db.Collection("likes"),
		ColComments: db.Collection("comments"),
	}
}

// LikedPosts joins the user's like rows to live posts, most recent like first.
// Posts whose author no longer resolves are dropped.
func (r *ViewRepository) LikedPosts(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	pipe := mongo.Pipeline{
		{{Key: StageMatch, Value: bson.M{"user_id": userID}}},
		{{Key: StageSort, Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: StageLookup, Value: bson.M{
			KeyFrom:         "posts",
			KeyLocalField:   "post_id",
			KeyForeignField: "_id",
			KeyAs:           "postInfo",
		}}},
		{{Key: StageUnwind, Value: "$postInfo"}},
		{{Key: StageMatch, Value: bson.M{"postInfo.is_deleted": false}}},
		{{Key: StageLookup, Value: bson.M{
			KeyFrom:         "users",
			KeyLocalField:   "postInfo.author_id",
			KeyForeignField: "_id",
			KeyAs:           "authorInfo",
		}}},
		{{Key: StageUnwind, Value: "$authorInfo"}},
		{{Key: StageReplaceRoot, Value: bson.M{"newRoot": "$postInfo"}}},
	}
	return r.aggregatePosts(ctx, r.ColLikes, pipe)
}

// CommentedPosts joins the user's comments to live posts, deduplicated so a
// post commented on several times appears once, ordered by the user's most
// recent comment.
func (r *ViewRepository) CommentedPosts(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	pipe := mongo.Pipeline{
		{{Key: StageMatch, Value: bson.M{"user_id": userID, "is_deleted": false}}},
		{{Key: StageSort, Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: StageLookup, Value: bson.M{
			KeyFrom:         "posts",
			KeyLocalField:   "post_id",
			KeyForeignField: "_id",
			KeyAs:           "postInfo",
		}}},
		{{Key: StageUnwind, Value: "$postInfo"}},
		{{Key: StageMatch, Value: bson.M{"postInfo.is_deleted": false}}},
		{{Key: StageLookup, Value: bson.M{
			KeyFrom:         "users",
			KeyLocalField:   "postInfo.author_id",
			KeyForeignField: "_id",
			KeyAs:           "authorInfo",
		}}},
		{{Key: StageUnwind, Value: "$authorInfo"}},
		{{Key: StageGroup, Value: bson.M{
			"_id":           "$postInfo._id",
			"postData":      bson.M{"$first": "$postInfo"},
			"lastCommented": bson.M{"$first": "$created_at"},
		}}},
		{{Key: StageSort, Value: bson.D{{Key: "lastCommented", Value: -1}}}},
		{{Key: StageReplaceRoot, Value: bson.M{"newRoot": "$postData"}}},
	}
	return r.aggregatePosts(ctx, r.ColComments, pipe)
}

func (r *ViewRepository) aggregatePosts(ctx context.Context, col *mongo.Collection, pipe mongo.Pipeline) ([]model.Post, error) {
	cur, err := col.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
