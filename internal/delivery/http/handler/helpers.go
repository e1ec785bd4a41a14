package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/pkg/validator"
)

// sessionID разбирает :id из пути
func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": "must be a UUID",
		})
	}
	return id, nil
}

// parseBody - BodyParser + валидация
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	return validator.Validate(req)
}
