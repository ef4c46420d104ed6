package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/dto"
	"socialfeed/services"
)

type LikeHandler struct {
	Service *services.LikeService
}

// POST /api/posts/:postId/like
func (h *LikeHandler) Toggle(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	liked, err := h.Service.Toggle(c.Context(), postID, uid)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(dto.ToggleLikeResp{Liked: liked})
}
