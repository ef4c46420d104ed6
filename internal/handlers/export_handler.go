package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/model"
	"socialfeed/services"
)

type ExportHandler struct {
	Service *services.ExportService
}

// GET /api/posts/export?mode=&format=csv|xlsx|zip
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	if _, ok := userIDFrom(c); !ok {
		return unauthorized(c)
	}

	mode := c.Query("mode", model.ModeNewest)
	format := c.Query("format", services.FormatCSV)

	file, err := h.Service.Export(c.Context(), mode, format)
	if err != nil {
		return respondErr(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return c.Send(file.Data)
}
