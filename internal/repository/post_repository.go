package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"socialfeed/model"
)

type PostRepository struct {
	ColPosts    *mongo.Collection
	ColComments *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		ColPosts:    db.Collection("posts"),
		ColComments: db.Collection("comments"),
	}
}

func (r *PostRepository) Insert(ctx context.Context, p *model.Post) error {
	_, err := r.ColPosts.InsertOne(ctx, p)
	return err
}

// FindByID returns (nil, nil) when the post does not exist.
func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var p model.Post
	if err := r.ColPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Update(ctx context.Context, id bson.ObjectID, set bson.M) error {
	_, err := r.ColPosts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *PostRepository) SoftDelete(ctx context.Context, id bson.ObjectID, at time.Time) error {
	_, err := r.ColPosts.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": at}},
	)
	return err
}

// RecountComments recomputes comments_count from the live comment rows and
// overwrites the stored counter. Corrective tool for drift, not a hot path.
func (r *PostRepository) RecountComments(ctx context.Context, id bson.ObjectID) (int64, error) {
	count, err := r.ColComments.CountDocuments(ctx, bson.M{"post_id": id, "is_deleted": false})
	if err != nil {
		return 0, err
	}
	_, err = r.ColPosts.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"comments_count": count}},
	)
	if err != nil {
		return 0, err
	}
	return count, nil
}
