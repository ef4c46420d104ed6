package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/apperr"
	"socialfeed/model"
)

type LikeStore interface {
	InsertLike(ctx context.Context, like model.Like) (dup bool, err error)
	DeleteLike(ctx context.Context, userID, postID bson.ObjectID) (bool, error)
	IncLikesCount(ctx context.Context, postID bson.ObjectID) error
	DecLikesCount(ctx context.Context, postID bson.ObjectID) error
}

type PostFinder interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
}

type LikedViewInvalidator interface {
	InvalidateLiked(ctx context.Context, userID bson.ObjectID)
}

type LikeService struct {
	Likes LikeStore
	Posts PostFinder
	Views LikedViewInvalidator
	Now   func() time.Time
}

func NewLikeService(likes LikeStore, posts PostFinder, views LikedViewInvalidator) *LikeService {
	return &LikeService{Likes: likes, Posts: posts, Views: views, Now: time.Now}
}

// Toggle flips the (user, post) like. The like row changes first, the counter
// second; a failed counter update leaves drift that Recount can repair, so it
// is logged rather than surfaced. The unique likes index arbitrates races: a
// duplicate insert means a concurrent toggle already created the row and
// counted it, so this call must not increment again.
func (s *LikeService) Toggle(ctx context.Context, postID, userID bson.ObjectID) (liked bool, err error) {
	post, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil || post.IsDeleted {
		return false, apperr.ErrNotFound
	}

	deleted, err := s.Likes.DeleteLike(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if deleted {
		if err := s.Likes.DecLikesCount(ctx, postID); err != nil {
			log.Printf("likes_count decrement failed for post %s: %v", postID.Hex(), err)
		}
		s.Views.InvalidateLiked(ctx, userID)
		return false, nil
	}

	dup, err := s.Likes.InsertLike(ctx, model.Like{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: s.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	if !dup {
		if err := s.Likes.IncLikesCount(ctx, postID); err != nil {
			log.Printf("likes_count increment failed for post %s: %v", postID.Hex(), err)
		}
	}
	s.Views.InvalidateLiked(ctx, userID)
	return true, nil
}
