package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/dto"
	"socialfeed/services"
)

type CommentHandler struct {
	Service *services.CommentService
}

// POST /api/posts/:postId/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	com, err := h.Service.Add(c.Context(), postID, uid, body.Content, body.ImageURL)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(http.StatusCreated).JSON(com)
}

// GET /api/posts/:postId/comments
func (h *CommentHandler) ListLatest(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	items, err := h.Service.LatestForPost(c.Context(), postID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"comments": items})
}

// PUT /api/comments/:commentId
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	commentID, err := bson.ObjectIDFromHex(c.Params("commentId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid comment id"})
	}

	var body dto.UpdateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	com, err := h.Service.Update(c.Context(), commentID, uid, body.Content)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(com)
}

// DELETE /api/comments/:commentId
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	commentID, err := bson.ObjectIDFromHex(c.Params("commentId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid comment id"})
	}

	if err := h.Service.Delete(c.Context(), commentID, uid); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
