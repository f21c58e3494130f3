package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/scaleapp/backend/internal/api/http/handler"
)

func (r *Router) registerResultRoutes(api fiber.Router, rh *handler.ResultHandler) {
	results := api.Group("/results")

	results.Post("/", rh.Create)

	res := results.Group("/:id")
	res.Get("/", rh.Get)

	// Lifecycle
	res.Post("/start", rh.Start)
	res.Post("/complete", rh.Complete)
	res.Post("/answers", rh.AddAnswer)

	// Analytics
	res.Get("/trend", rh.Trend)
}
