package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/apperr"
)

// userIDFrom reads the authenticated user id set by the JWT middleware.
func userIDFrom(c *fiber.Ctx) (bson.ObjectID, bool) {
	if v := c.Locals("user_id"); v != nil {
		if s, ok := v.(string); ok {
			if oid, err := bson.ObjectIDFromHex(s); err == nil {
				return oid, true
			}
		}
	}
	return bson.NilObjectID, false
}

// respondErr maps the error taxonomy to HTTP statuses.
func respondErr(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}
