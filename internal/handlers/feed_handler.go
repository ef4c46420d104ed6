package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/model"
	"socialfeed/services"
)

type FeedHandler struct {
	Service *services.FeedService
}

// GET /api/posts/feed?mode=&page=&limit=
// Malformed pagination is tolerated: the service defaults it rather than
// rejecting the request.
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	q := model.FeedQuery{
		Mode:  c.Query("mode", model.ModeNewest),
		Page:  int64(c.QueryInt("page", 1)),
		Limit: int64(c.QueryInt("limit", services.DefaultFeedLimit)),
	}

	page, err := h.Service.GetFeed(c.Context(), uid, q)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(page)
}
