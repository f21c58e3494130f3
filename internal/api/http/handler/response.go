package handler

import "github.com/gofiber/fiber/v3"

const (
	defaultLimit = 10
	maxLimit     = 100
)

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func created(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

func noContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func conflict(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
}

func unprocessable(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": msg})
}

func internalError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// pagination reads skip/limit query params with the documented defaults.
// limit is capped at 100; out-of-range values are clamped, not rejected.
func pagination(c fiber.Ctx) (skip, limit int) {
	var q struct {
		Skip  int `query:"skip"`
		Limit int `query:"limit"`
	}
	q.Limit = defaultLimit
	_ = c.Bind().Query(&q)

	skip = q.Skip
	if skip < 0 {
		skip = 0
	}
	limit = q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

// pageEnvelope shapes a paginated list response. total comes from a real
// count query, so has_next is exact rather than the page-length guess.
func pageEnvelope(total, skip, limit, count int, items any) fiber.Map {
	return fiber.Map{
		"total":    total,
		"page":     skip/limit + 1,
		"per_page": limit,
		"items":    items,
		"has_next": skip+count < total,
		"has_prev": skip > 0,
	}
}

func paginated(c fiber.Ctx, total, skip, limit, count int, items any) error {
	return c.JSON(pageEnvelope(total, skip, limit, count, items))
}
