package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/dto"
	"socialfeed/services"
)

type PostHandler struct {
	Service *services.PostService
}

// POST /api/posts
func (h *PostHandler) Create(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var body dto.CreatePostReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	post, err := h.Service.Create(c.Context(), uid, body)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(http.StatusCreated).JSON(post)
}

// PUT /api/posts/:id
func (h *PostHandler) Update(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	var body dto.UpdatePostReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	post, err := h.Service.Update(c.Context(), postID, uid, body)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(post)
}

// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	uid, ok := userIDFrom(c)
	if !ok {
		return unauthorized(c)
	}

	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	if err := h.Service.Delete(c.Context(), postID, uid); err != nil {
		return respondErr(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// POST /api/posts/:id/recount
func (h *PostHandler) Recount(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	count, err := h.Service.Recount(c.Context(), postID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"commentsCount": count})
}
