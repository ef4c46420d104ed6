package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"socialfeed/model"
)

type LikeRepository struct {
	ColLikes *mongo.Collection
	ColPosts *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{
		ColLikes: db.Collection("likes"),
		ColPosts: db.Collection("posts"),
	}
}

// InsertLike inserts a like row. A duplicate-key violation of the unique
// (user_id, post_id) index reports dup=true instead of an error: it means a
// concurrent toggle already created the row.
func (r *LikeRepository) InsertLike(ctx context.Context, like model.Like) (dup bool, err error) {
	_, err = r.ColLikes.InsertOne(ctx, like)
	if err == nil {
		return false, nil
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return true, nil
	}
	return false, err
}

// DeleteLike removes the (user, post) like row if present.
func (r *LikeRepository) DeleteLike(ctx context.Context, userID, postID bson.ObjectID) (bool, error) {
	res, err := r.ColLikes.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

func (r *LikeRepository) IncLikesCount(ctx context.Context, postID bson.ObjectID) error {
	_, err := r.ColPosts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{"likes_count": 1}},
	)
	return err
}

func (r *LikeRepository) DecLikesCount(ctx context.Context, postID bson.ObjectID) error {
	_, err := r.ColPosts.UpdateOne(ctx,
		bson.M{"_id": postID},
		flooredDec("likes_count"),
	)
	return err
}

// flooredDec builds a pipeline update: field = max(0, (field || 0) - 1).
// A drifted counter must never go negative.
func flooredDec(field string) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: field, Value: bson.D{
				{Key: "$max", Value: bson.A{
					0,
					bson.D{{Key: "$subtract", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, 0}}},
						1,
					}}},
				}},
			}},
		}}},
	}
}
