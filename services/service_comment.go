package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/apperr"
	"socialfeed/model"
)

const latestCommentsLimit = 2

type CommentStore interface {
	Insert(ctx context.Context, c *model.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string, at time.Time) error
	SoftDelete(ctx context.Context, c *model.Comment, at time.Time) error
	LatestForPost(ctx context.Context, postID bson.ObjectID, limit int64) ([]model.CommentPreview, error)
}

type CommentedViewInvalidator interface {
	InvalidateCommented(ctx context.Context, userID bson.ObjectID)
}

type CommentService struct {
	Comments CommentStore
	Posts    PostFinder
	Views    CommentedViewInvalidator
	Now      func() time.Time
}

func NewCommentService(comments CommentStore, posts PostFinder, views CommentedViewInvalidator) *CommentService {
	return &CommentService{Comments: comments, Posts: posts, Views: views, Now: time.Now}
}

func (s *CommentService) Add(ctx context.Context, postID, userID bson.ObjectID, content, imageURL string) (*model.Comment, error) {
	if content == "" {
		return nil, apperr.ErrInvalid
	}

	post, err := s.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted {
		return nil, apperr.ErrNotFound
	}

	now := s.Now().UTC()
	c := &model.Comment{
		ID:        bson.NewObjectID(),
		Content:   content,
		UserID:    userID,
		PostID:    postID,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Comments.Insert(ctx, c); err != nil {
		return nil, err
	}
	s.Views.InvalidateCommented(ctx, userID)
	return c, nil
}

// Update edits the comment body in place. Counters are untouched. A non-owner
// gets NotFound, same as a missing comment.
func (s *CommentService) Update(ctx context.Context, commentID, userID bson.ObjectID, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperr.ErrInvalid
	}

	c, err := s.Comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted || c.UserID != userID {
		return nil, apperr.ErrNotFound
	}

	now := s.Now().UTC()
	if err := s.Comments.UpdateContent(ctx, commentID, content, now); err != nil {
		return nil, err
	}
	c.Content = content
	c.UpdatedAt = now
	s.Views.InvalidateCommented(ctx, userID)
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, commentID, userID bson.ObjectID) error {
	c, err := s.Comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil || c.IsDeleted || c.UserID != userID {
		return apperr.ErrNotFound
	}

	if err := s.Comments.SoftDelete(ctx, c, s.Now().UTC()); err != nil {
		return err
	}
	s.Views.InvalidateCommented(ctx, userID)
	return nil
}

func (s *CommentService) LatestForPost(ctx context.Context, postID bson.ObjectID) ([]model.CommentPreview, error) {
	return s.Comments.LatestForPost(ctx, postID, latestCommentsLimit)
}
