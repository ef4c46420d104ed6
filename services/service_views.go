package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/cache"
	"socialfeed/model"
)

type ViewStore interface {
	LikedPosts(ctx context.Context, userID bson.ObjectID) ([]model.Post, error)
	CommentedPosts(ctx context.Context, userID bson.ObjectID) ([]model.Post, error)
}

// ViewService serves the two per-user derived views cache-aside: read the
// cache, fall back to the store on miss or cache failure, repopulate with a
// TTL. Mutation services invalidate eagerly through InvalidateLiked /
// InvalidateCommented.
type ViewService struct {
	Store ViewStore
	Cache cache.Store
	TTL   time.Duration
}

func NewViewService(store ViewStore, c cache.Store, ttl time.Duration) *ViewService {
	return &ViewService{Store: store, Cache: c, TTL: ttl}
}

func likedKey(userID bson.ObjectID) string {
	return "user:" + userID.Hex() + ":liked_posts"
}

func commentedKey(userID bson.ObjectID) string {
	return "user:" + userID.Hex() + ":commented_posts"
}

func (s *ViewService) MyLikedPosts(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	return s.cached(ctx, likedKey(userID), func() ([]model.Post, error) {
		return s.Store.LikedPosts(ctx, userID)
	})
}

func (s *ViewService) MyCommentedPosts(ctx context.Context, userID bson.ObjectID) ([]model.Post, error) {
	return s.cached(ctx, commentedKey(userID), func() ([]model.Post, error) {
		return s.Store.CommentedPosts(ctx, userID)
	})
}

func (s *ViewService) InvalidateLiked(ctx context.Context, userID bson.ObjectID) {
	s.invalidate(ctx, likedKey(userID))
}

func (s *ViewService) InvalidateCommented(ctx context.Context, userID bson.ObjectID) {
	s.invalidate(ctx, commentedKey(userID))
}

// cached never fails because of the cache: a broken read falls through to the
// store, a broken write is logged and the fresh result returned anyway.
func (s *ViewService) cached(ctx context.Context, key string, compute func() ([]model.Post, error)) ([]model.Post, error) {
	var posts []model.Post
	ok, err := s.Cache.Get(ctx, key, &posts)
	if err != nil {
		log.Printf("cache get %s failed: %v", key, err)
	} else if ok {
		return posts, nil
	}

	posts, err = compute()
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, key, posts, s.TTL); err != nil {
		log.Printf("cache set %s failed: %v", key, err)
	}
	return posts, nil
}

func (s *ViewService) invalidate(ctx context.Context, key string) {
	if err := s.Cache.Del(ctx, key); err != nil {
		log.Printf("cache del %s failed: %v", key, err)
	}
}
