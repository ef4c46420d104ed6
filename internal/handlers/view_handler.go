package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/services"
)

type ViewHandler struct {
	Service *services.ViewService
}

// GET /api/posts/myLiked
func (h *ViewHandler) MyLiked(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	posts, err := h.Service.MyLikedPosts(c.Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GET /api/posts/myCommented
func (h *ViewHandler) MyCommented(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	posts, err := h.Service.MyCommentedPosts(c.Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}
