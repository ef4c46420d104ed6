package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/apperr"
	"socialfeed/dto"
	"socialfeed/model"
)

type PostStore interface {
	Insert(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) error
	SoftDelete(ctx context.Context, id bson.ObjectID, at time.Time) error
	RecountComments(ctx context.Context, id bson.ObjectID) (int64, error)
}

type PostService struct {
	Posts PostStore
	Now   func() time.Time
}

func NewPostService(posts PostStore) *PostService {
	return &PostService{Posts: posts, Now: time.Now}
}

func (s *PostService) Create(ctx context.Context, userID bson.ObjectID, req dto.CreatePostReq) (*model.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperr.ErrInvalid
	}

	now := s.Now().UTC()
	p := &model.Post{
		ID:        bson.NewObjectID(),
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  userID,
		ImageURL:  req.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Posts.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, postID, userID bson.ObjectID, req dto.UpdatePostReq) (*model.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperr.ErrInvalid
	}

	p, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	set := bson.M{
		"title":      req.Title,
		"content":    req.Content,
		"image_url":  req.ImageURL,
		"updated_at": now,
	}
	if err := s.Posts.Update(ctx, postID, set); err != nil {
		return nil, err
	}
	p.Title = req.Title
	p.Content = req.Content
	p.ImageURL = req.ImageURL
	p.UpdatedAt = now
	return p, nil
}

// Delete soft-deletes: the document stays in storage, flagged and timestamped.
func (s *PostService) Delete(ctx context.Context, postID, userID bson.ObjectID) error {
	if _, err := s.ownedPost(ctx, postID, userID); err != nil {
		return err
	}
	return s.Posts.SoftDelete(ctx, postID, s.Now().UTC())
}

// Recount reconciles comments_count against the live comment rows. Works on
// soft-deleted posts too; drift repair should not care about visibility.
func (s *PostService) Recount(ctx context.Context, postID bson.ObjectID) (int64, error) {
	p, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, apperr.ErrNotFound
	}
	return s.Posts.RecountComments(ctx, postID)
}

// ownedPost loads a live post and checks ownership. Any failure is NotFound;
// non-owners learn nothing about the post's existence.
func (s *PostService) ownedPost(ctx context.Context, postID, userID bson.ObjectID) (*model.Post, error) {
	p, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsDeleted || p.AuthorID != userID {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}
