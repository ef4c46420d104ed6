package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/apperr"
	"socialfeed/dto"
	"socialfeed/model"
)

type fakePostStore struct {
	byID     map[bson.ObjectID]*model.Post
	inserted []*model.Post
	updates  []bson.M
	deletes  []bson.ObjectID
	recounts []bson.ObjectID
	recount  int64
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{byID: map[bson.ObjectID]*model.Post{}}
}

func (f *fakePostStore) Insert(_ context.Context, p *model.Post) error {
	f.inserted = append(f.inserted, p)
	f.byID[p.ID] = p
	return nil
}

func (f *fakePostStore) FindByID(_ context.Context, id bson.ObjectID) (*model.Post, error) {
	return f.byID[id], nil
}

func (f *fakePostStore) Update(_ context.Context, _ bson.ObjectID, set bson.M) error {
	f.updates = append(f.updates, set)
	return nil
}

func (f *fakePostStore) SoftDelete(_ context.Context, id bson.ObjectID, at time.Time) error {
	f.deletes = append(f.deletes, id)
	if p, ok := f.byID[id]; ok {
		p.IsDeleted = true
		p.DeletedAt = &at
	}
	return nil
}

func (f *fakePostStore) RecountComments(_ context.Context, id bson.ObjectID) (int64, error) {
	f.recounts = append(f.recounts, id)
	return f.recount, nil
}

func TestCreatePost(t *testing.T) {
	store := newFakePostStore()
	svc := NewPostService(store)
	userID := bson.NewObjectID()

	p, err := svc.Create(context.Background(), userID, dto.CreatePostReq{Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.Equal(t, userID, p.AuthorID)
	assert.Equal(t, 0, p.LikesCount)
	assert.Equal(t, 0, p.CommentsCount)
	assert.False(t, p.IsDeleted)
	require.Len(t, store.inserted, 1)
}

func TestCreatePostRequiresTitleAndContent(t *testing.T) {
	svc := NewPostService(newFakePostStore())
	_, err := svc.Create(context.Background(), bson.NewObjectID(), dto.CreatePostReq{Title: "t"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
	_, err = svc.Create(context.Background(), bson.NewObjectID(), dto.CreatePostReq{Content: "c"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestUpdatePostNotOwner(t *testing.T) {
	store := newFakePostStore()
	p := &model.Post{ID: bson.NewObjectID(), AuthorID: bson.NewObjectID()}
	store.byID[p.ID] = p

	svc := NewPostService(store)
	_, err := svc.Update(context.Background(), p.ID, bson.NewObjectID(), dto.UpdatePostReq{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, store.updates)
}

func TestUpdatePost(t *testing.T) {
	store := newFakePostStore()
	owner := bson.NewObjectID()
	p := &model.Post{ID: bson.NewObjectID(), AuthorID: owner, Title: "old", Content: "old"}
	store.byID[p.ID] = p

	svc := NewPostService(store)
	updated, err := svc.Update(context.Background(), p.ID, owner, dto.UpdatePostReq{Title: "new", Content: "body"})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	require.Len(t, store.updates, 1)
	assert.Equal(t, "new", store.updates[0]["title"])
}

func TestDeletePostIsSoft(t *testing.T) {
	store := newFakePostStore()
	owner := bson.NewObjectID()
	p := &model.Post{ID: bson.NewObjectID(), AuthorID: owner}
	store.byID[p.ID] = p

	svc := NewPostService(store)
	require.NoError(t, svc.Delete(context.Background(), p.ID, owner))

	// The document survives, flagged.
	assert.True(t, store.byID[p.ID].IsDeleted)
	assert.NotNil(t, store.byID[p.ID].DeletedAt)

	// Deleting again behaves like the post is gone.
	err := svc.Delete(context.Background(), p.ID, owner)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecount(t *testing.T) {
	store := newFakePostStore()
	store.recount = 7
	p := &model.Post{ID: bson.NewObjectID(), AuthorID: bson.NewObjectID()}
	store.byID[p.ID] = p

	svc := NewPostService(store)
	n, err := svc.Recount(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, []bson.ObjectID{p.ID}, store.recounts)

	_, err = svc.Recount(context.Background(), bson.NewObjectID())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
