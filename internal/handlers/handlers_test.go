package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/model"
	"socialfeed/services"
)

type stubFeedStore struct {
	lastQuery model.FeedPageQuery
	posts     []model.FeedPost
	total     int64
}

func (s *stubFeedStore) Page(_ context.Context, q model.FeedPageQuery) ([]model.FeedPost, int64, error) {
	s.lastQuery = q
	return s.posts, s.total, nil
}

type stubLikeStore struct {
	hasLike bool
}

func (s *stubLikeStore) InsertLike(_ context.Context, _ model.Like) (bool, error) {
	s.hasLike = true
	return false, nil
}

func (s *stubLikeStore) DeleteLike(_ context.Context, _, _ bson.ObjectID) (bool, error) {
	if s.hasLike {
		s.hasLike = false
		return true, nil
	}
	return false, nil
}

func (s *stubLikeStore) IncLikesCount(_ context.Context, _ bson.ObjectID) error { return nil }
func (s *stubLikeStore) DecLikesCount(_ context.Context, _ bson.ObjectID) error { return nil }

type stubPostFinder struct {
	post *model.Post
}

func (s *stubPostFinder) FindByID(_ context.Context, _ bson.ObjectID) (*model.Post, error) {
	return s.post, nil
}

type noopViews struct{}

func (noopViews) InvalidateLiked(_ context.Context, _ bson.ObjectID)     {}
func (noopViews) InvalidateCommented(_ context.Context, _ bson.ObjectID) {}

// testApp injects an authenticated user the way the JWT middleware would.
func testApp(uid string, mount func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if uid != "" {
			c.Locals("user_id", uid)
		}
		return c.Next()
	})
	mount(app)
	return app
}

func TestFeedHandler(t *testing.T) {
	store := &stubFeedStore{posts: []model.FeedPost{{Post: model.Post{ID: bson.NewObjectID(), Title: "hi"}}}, total: 1}
	h := &FeedHandler{Service: services.NewFeedService(store)}
	app := testApp(bson.NewObjectID().Hex(), func(app *fiber.App) {
		app.Get("/feed", h.GetFeed)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/feed?mode=most_liked&page=1&limit=5", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page model.FeedPage
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &page))

	assert.Equal(t, int64(1), page.Meta.TotalItems)
	assert.Equal(t, int64(5), page.Meta.ItemsPerPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "hi", page.Data[0].Title)
	assert.Equal(t, services.SortCondition(model.ModeMostLiked), store.lastQuery.Sort)
}

func TestFeedHandlerUnauthorized(t *testing.T) {
	h := &FeedHandler{Service: services.NewFeedService(&stubFeedStore{})}
	app := testApp("", func(app *fiber.App) {
		app.Get("/feed", h.GetFeed)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/feed", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLikeHandlerToggle(t *testing.T) {
	h := &LikeHandler{Service: services.NewLikeService(&stubLikeStore{}, &stubPostFinder{post: &model.Post{ID: bson.NewObjectID()}}, noopViews{})}
	app := testApp(bson.NewObjectID().Hex(), func(app *fiber.App) {
		app.Post("/posts/:postId/like", h.Toggle)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/posts/"+bson.NewObjectID().Hex()+"/like", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Liked bool `json:"liked"`
	}
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Liked)
}

func TestLikeHandlerBadPostID(t *testing.T) {
	h := &LikeHandler{Service: services.NewLikeService(&stubLikeStore{}, &stubPostFinder{}, noopViews{})}
	app := testApp(bson.NewObjectID().Hex(), func(app *fiber.App) {
		app.Post("/posts/:postId/like", h.Toggle)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/posts/not-an-id/like", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLikeHandlerMissingPostMapsToNotFound(t *testing.T) {
	h := &LikeHandler{Service: services.NewLikeService(&stubLikeStore{}, &stubPostFinder{post: nil}, noopViews{})}
	app := testApp(bson.NewObjectID().Hex(), func(app *fiber.App) {
		app.Post("/posts/:postId/like", h.Toggle)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/posts/"+bson.NewObjectID().Hex()+"/like", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPostHandlerCreateInvalidBodyMapsToBadRequest(t *testing.T) {
	h := &PostHandler{Service: services.NewPostService(stubPostStore{})}
	app := testApp(bson.NewObjectID().Hex(), func(app *fiber.App) {
		app.Post("/posts", h.Create)
	})

	// Valid JSON, but empty title/content: the service rejects it as Invalid.
	req := httptest.NewRequest("POST", "/posts", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

type stubPostStore struct{}

func (stubPostStore) Insert(_ context.Context, _ *model.Post) error { return nil }
func (stubPostStore) FindByID(_ context.Context, _ bson.ObjectID) (*model.Post, error) {
	return nil, nil
}
func (stubPostStore) Update(_ context.Context, _ bson.ObjectID, _ bson.M) error { return nil }
func (stubPostStore) SoftDelete(_ context.Context, _ bson.ObjectID, _ time.Time) error {
	return nil
}
func (stubPostStore) RecountComments(_ context.Context, _ bson.ObjectID) (int64, error) {
	return 0, nil
}
