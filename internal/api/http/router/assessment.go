package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/scaleapp/backend/internal/api/http/handler"
)

func (r *Router) registerAssessmentRoutes(api fiber.Router, ah *handler.AssessmentHandler) {
	assessments := api.Group("/assessments")

	// Assessment CRUD
	assessments.Get("/", ah.List)
	assessments.Post("/", ah.Create)

	a := assessments.Group("/:id")
	a.Get("/", ah.Get)
	a.Put("/", ah.Update)
	a.Delete("/", ah.Delete)

	// Questions & options
	a.Post("/questions", ah.AddQuestion)
	a.Post("/options", ah.AddOption)

	// Aggregates
	a.Get("/statistics", ah.Statistics)
}
