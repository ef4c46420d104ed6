package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"socialfeed/apperr"
	"socialfeed/model"
)

type CommentRepository struct {
	Client      *mongo.Client
	ColComments *mongo.Collection
	ColPosts    *mongo.Collection
}

func NewCommentRepository(client *mongo.Client, db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		Client:      client,
		ColComments: db.Collection("comments"),
		ColPosts:    db.Collection("posts"),
	}
}

// Insert writes the comment and bumps the parent's comments_count in one
// transaction, so the caller sees them as a single mutation.
func (r *CommentRepository) Insert(ctx context.Context, c *model.Comment) error {
	sess, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (interface{}, error) {
		if _, err := r.ColComments.InsertOne(sc, c); err != nil {
			return nil, err
		}
		res, err := r.ColPosts.UpdateOne(
			sc,
			bson.M{"_id": c.PostID, "is_deleted": false},
			bson.M{"$inc": bson.M{"comments_count": 1}},
		)
		if err != nil {
			return nil, err
		}
		// Post vanished between the service's check and the write.
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("post %s: %w", c.PostID.Hex(), apperr.ErrNotFound)
		}
		return nil, nil
	})
	return err
}

// FindByID returns (nil, nil) when the comment does not exist.
func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var c model.Comment
	if err := r.ColComments.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string, at time.Time) error {
	_, err := r.ColComments.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "updated_at": at}},
	)
	return err
}

// SoftDelete marks the comment deleted and decrements the parent's
// comments_count (floored at zero) in one transaction.
func (r *CommentRepository) SoftDelete(ctx context.Context, c *model.Comment, at time.Time) error {
	sess, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (interface{}, error) {
		res, err := r.ColComments.UpdateOne(
			sc,
			bson.M{"_id": c.ID, "is_deleted": false},
			bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": at}},
		)
		if err != nil {
			return nil, err
		}
		// Already gone: nothing to decrement.
		if res.ModifiedCount == 0 {
			return nil, nil
		}
		_, err = r.ColPosts.UpdateOne(sc, bson.M{"_id": c.PostID}, flooredDec("comments_count"))
		return nil, err
	})
	return err
}

// LatestForPost returns the newest live comments for a post with commenter
// name/avatar attached, newest first.
func (r *CommentRepository) LatestForPost(ctx context.Context, postID bson.ObjectID, limit int64) ([]model.CommentPreview, error) {
	pipe := mongo.Pipeline{
		{{Key: StageMatch, Value: bson.M{"post_id": postID, "is_deleted": false}}},
		{{Key: StageSort, Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: StageLimit, Value: limit}},
		{{Key: StageLookup, Value: bson.M{
			KeyFrom:         "users",
			KeyLocalField:   "user_id",
			KeyForeignField: "_id",
			KeyAs:           "commenter",
		}}},
		{{Key: StageUnwind, Value: bson.M{"path": "$commenter", "preserveNullAndEmptyArrays": true}}},
		{{Key: StageProject, Value: bson.M{
			"content":          1,
			"created_at":       1,
			"commenter.name":   1,
			"commenter.avatar": 1,
		}}},
	}

	cur, err := r.ColComments.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []model.CommentPreview
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
